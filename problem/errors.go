package problem

import "errors"

var (
	// ErrNoVehicles indicates a Problem was built with an empty fleet.
	ErrNoVehicles = errors.New("problem: no vehicles")

	// ErrJobIndexMismatch indicates Problem.Jobs[i].Index != i; jobs must
	// be stored at their own Index so routes can reference them directly.
	ErrJobIndexMismatch = errors.New("problem: job stored at wrong index")

	// ErrVehicleIndexMismatch indicates Problem.Vehicles[i].Index != i.
	ErrVehicleIndexMismatch = errors.New("problem: vehicle stored at wrong index")

	// ErrUnpairedShipment indicates a Pickup or Delivery job whose sibling
	// (same ShipmentID, opposite Kind) is missing from the job set.
	ErrUnpairedShipment = errors.New("problem: unpaired shipment half")

	// ErrAmountDimMismatch indicates a Job or Vehicle amount vector whose
	// dimension does not match Problem.AmountDim.
	ErrAmountDimMismatch = errors.New("problem: amount dimension mismatch")
)
