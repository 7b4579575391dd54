package contracts

// DeviceInfo contains information about a MIDI endpoint.
type DeviceInfo struct {
	ID           int    // Index accepted by SelectDevice or SelectDestination.
	Name         string // Endpoint name.
	Manufacturer string // Endpoint manufacturer.
	EntityName   string // Name of the entity to which the endpoint belongs.
}
