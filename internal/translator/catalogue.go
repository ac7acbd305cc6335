// Package translator converts between the UDS wire model
// (internal/uds) and the SOVD REST model (pkg/api/handlers' DTOs): the
// component/DID/actuator catalogue, raw-byte-to-JSON-value coercion,
// and DTC formatting.
package translator

import (
	"fmt"
	"sort"

	"github.com/marmos91/sovdgw/internal/uds"
)

// DataType is the declared JSON shape a data item's raw UDS bytes
// coerce to.
type DataType string

const (
	DataTypeString  DataType = "string"
	DataTypeNumber  DataType = "number"
	DataTypeBoolean DataType = "boolean"
	DataTypeHex     DataType = "hex"
)

// DataItem describes one readable/writable SOVD data item and the DID
// it maps to.
type DataItem struct {
	ID          string
	DID         uds.DataIdentifier
	Category    string
	DisplayName string
	DataType    DataType
}

// Actuator describes one controllable SOVD actuator and the UDS
// routine it maps to.
type Actuator struct {
	ID        string
	RoutineID uint16
}

// Catalogue is the translation table between SOVD identifiers and UDS
// wire values. It is built once from configuration and is read-only
// after construction, so it is safe for concurrent use.
type Catalogue struct {
	components map[string]uint32
	dataItems  map[string]DataItem
	actuators  map[string]Actuator
}

// defaultDataItems mirrors the well-known DID catalogue: vin, serial
// number, hardware/software version, manufacturing date, and supplier
// id, all grouped under the "identData" category.
func defaultDataItems() map[string]DataItem {
	return map[string]DataItem{
		"vin": {
			ID: "vin", DID: uds.DIDVIN, Category: "identData",
			DisplayName: "Vehicle Identification Number", DataType: DataTypeString,
		},
		"ecu_serial_number": {
			ID: "ecu_serial_number", DID: uds.DIDECUSerialNumber, Category: "identData",
			DisplayName: "ECU Serial Number", DataType: DataTypeString,
		},
		"ecu_hardware_version": {
			ID: "ecu_hardware_version", DID: uds.DIDECUHardwareVersion, Category: "identData",
			DisplayName: "ECU Hardware Version", DataType: DataTypeString,
		},
		"ecu_software_version": {
			ID: "ecu_software_version", DID: uds.DIDECUSoftwareVersion, Category: "identData",
			DisplayName: "ECU Software Version", DataType: DataTypeString,
		},
		"manufacturing_date": {
			ID: "manufacturing_date", DID: uds.DIDManufacturingDate, Category: "identData",
			DisplayName: "Manufacturing Date", DataType: DataTypeString,
		},
		"system_supplier_id": {
			ID: "system_supplier_id", DID: uds.DIDSystemSupplierID, Category: "identData",
			DisplayName: "System Supplier ID", DataType: DataTypeString,
		},
	}
}

// defaultActuators mirrors the well-known actuator-to-routine mapping.
func defaultActuators() map[string]Actuator {
	return map[string]Actuator{
		"fuel_pump":   {ID: "fuel_pump", RoutineID: 0x0201},
		"cooling_fan": {ID: "cooling_fan", RoutineID: 0x0202},
		"throttle":    {ID: "throttle", RoutineID: 0x0203},
	}
}

// New builds a Catalogue from the configured component map, seeded
// with the default data item and actuator catalogues.
func New(components map[string]uint32) *Catalogue {
	return &Catalogue{
		components: components,
		dataItems:  defaultDataItems(),
		actuators:  defaultActuators(),
	}
}

// ComponentAddress resolves a SOVD component id to its UDS address.
func (c *Catalogue) ComponentAddress(componentID string) (uint32, error) {
	addr, ok := c.components[componentID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", uds.ErrComponentNotFound, componentID)
	}
	return addr, nil
}

// ComponentIDs returns every configured component id, sorted.
func (c *Catalogue) ComponentIDs() []string {
	ids := make([]string, 0, len(c.components))
	for id := range c.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DataItemByID looks up a data item's DID mapping.
func (c *Catalogue) DataItemByID(id string) (DataItem, bool) {
	item, ok := c.dataItems[id]
	return item, ok
}

// DataItemIDs returns every known data item id, optionally filtered by
// category (empty means all).
func (c *Catalogue) DataItemIDs(category string) []string {
	ids := make([]string, 0, len(c.dataItems))
	for id, item := range c.dataItems {
		if category == "" || item.Category == category {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// ActuatorByID looks up an actuator's routine mapping.
func (c *Catalogue) ActuatorByID(id string) (Actuator, bool) {
	actuator, ok := c.actuators[id]
	return actuator, ok
}
