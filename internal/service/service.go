// Package service contains the business logic.
//
// It sits between the command layer and the repository layer.
// It validates input, bounds each call with a timeout and calls
// repository methods to interact with the data.
package service
