package problem

import (
	"github.com/routesmith/vrpls/costmatrix"
	"github.com/routesmith/vrpls/model"
)

// Problem is the validated, immutable input to the local-search core: a
// fleet of Vehicles, a set of Jobs, the cost matrices they travel on, and
// the shared capacity-vector dimension. Construction validates structural
// invariants (index alignment, shipment pairing, amount dimensions); the
// caller is responsible for feasibility of individual Jobs/Vehicles
// before calling New (§1, "consumes a validated problem description").
type Problem struct {
	Jobs      []model.Job
	Vehicles  []model.Vehicle
	Matrices  *costmatrix.Set
	AmountDim int

	// shipments maps a ShipmentID to the (pickup, delivery) job indices.
	shipments map[int][2]int
}

// New validates and constructs a Problem. It returns an error rather than
// panicking, even though malformed input is technically out of this
// core's scope (§1): a library constructor still owes its caller a
// clean failure instead of an index-out-of-range panic.
func New(jobs []model.Job, vehicles []model.Vehicle, matrices *costmatrix.Set, amountDim int) (*Problem, error) {
	if len(vehicles) == 0 {
		return nil, ErrNoVehicles
	}
	for i, v := range vehicles {
		if v.Index != i {
			return nil, ErrVehicleIndexMismatch
		}
		if v.Capacity.Dim() != amountDim {
			return nil, ErrAmountDimMismatch
		}
	}

	shipments := make(map[int][2]int)
	for i, j := range jobs {
		if j.Index != i {
			return nil, ErrJobIndexMismatch
		}
		if j.Delivery.Dim() != amountDim || j.Pickup.Dim() != amountDim {
			return nil, ErrAmountDimMismatch
		}
		if !j.IsShipmentHalf() {
			continue
		}
		pair := shipments[j.ShipmentID]
		if j.Kind == model.Pickup {
			pair[0] = i + 1 // +1: 0 means "unset" in the zero value
		} else {
			pair[1] = i + 1
		}
		shipments[j.ShipmentID] = pair
	}
	for _, pair := range shipments {
		if pair[0] == 0 || pair[1] == 0 {
			return nil, ErrUnpairedShipment
		}
	}

	return &Problem{
		Jobs:      jobs,
		Vehicles:  vehicles,
		Matrices:  matrices,
		AmountDim: amountDim,
		shipments: shipments,
	}, nil
}

// ShipmentPair returns the (pickup index, delivery index) for shipmentID.
func (p *Problem) ShipmentPair(shipmentID int) (pickup, delivery int, ok bool) {
	pair, found := p.shipments[shipmentID]
	if !found {
		return 0, 0, false
	}

	return pair[0] - 1, pair[1] - 1, true
}

// Sibling returns the paired job index for a Pickup or Delivery job j,
// and ok=false if j is a Single job.
func (p *Problem) Sibling(j model.Job) (int, bool) {
	if !j.IsShipmentHalf() {
		return 0, false
	}
	pickup, delivery, ok := p.ShipmentPair(j.ShipmentID)
	if !ok {
		return 0, false
	}
	if j.Kind == model.Pickup {
		return delivery, true
	}

	return pickup, true
}

// Eval returns the (cost, duration) Eval of travelling from location index
// fromLocation to location index toLocation for a vehicle on the given
// profile, or an error if the
// profile/location indices are invalid.
func (p *Problem) Eval(profile string, fromLocation, toLocation int) (model.Eval, error) {
	m, err := p.Matrices.For(profile)
	if err != nil {
		return model.Eval{}, err
	}
	d, err := m.Duration(fromLocation, toLocation)
	if err != nil {
		return model.Eval{}, err
	}
	c, err := m.Cost(fromLocation, toLocation)
	if err != nil {
		return model.Eval{}, err
	}

	return model.Eval{Cost: c, Duration: d}, nil
}
