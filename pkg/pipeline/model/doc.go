// Package model provides the data structures shared by the pipeline package and its observers.
// It defines the description of every stage of a pipeline and the hooks an observer can implement.
package model
