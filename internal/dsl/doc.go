// Package dsl renders a REST method table into the text representation kept
// in a resource's spec.source field:
//
//	/**
//	 * Returns a single task
//	 */
//	@GET("/tasks/{id}")
//	getTask(@Path id:string):Task
//
// One block per method in table order, separated by a blank line.
package dsl
