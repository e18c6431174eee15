// Package services holds the stateless domain services of dispatch: the distance
// abstraction, the store and agent locators and the ETA/fee estimator.
//
// Services never load or persist anything; the application layer hands them the
// candidates it read inside a unit of work.
package services
