package model

import (
	"fmt"
	"strings"
)

// Field names used as keys in draft validation errors. They match the backend's
// field names so local and remote validation errors read the same.
const (
	FieldMake         = "marke"
	FieldModel        = "modell"
	FieldYear         = "baujahr"
	FieldAccident     = "unfallhistorie"
	FieldFuel         = "kraftstoffart"
	FieldTransmission = "getriebe"
	FieldPrice        = "preis"
	FieldOdometer     = "kilometer"
	FieldFeatures     = "ausstattung"
	FieldExtras       = "extras"
)

// FieldErrors maps a field name to its messages. Keys keeps the order in
// which fields were reported.
type FieldErrors struct {
	Keys     []string
	Messages map[string][]string
}

// Add appends msg to field, remembering first-seen field order.
func (f *FieldErrors) Add(field, msg string) {
	if f.Messages == nil {
		f.Messages = map[string][]string{}
	}
	if _, ok := f.Messages[field]; !ok {
		f.Keys = append(f.Keys, field)
	}
	f.Messages[field] = append(f.Messages[field], msg)
}

// Empty reports whether no field error was recorded.
func (f *FieldErrors) Empty() bool {
	return f == nil || len(f.Keys) == 0
}

// Headline renders the first field as "field: msg1, msg2".
func (f *FieldErrors) Headline() string {
	if f.Empty() {
		return ""
	}
	k := f.Keys[0]
	return fmt.Sprintf("%s: %s", k, strings.Join(f.Messages[k], ", "))
}

// Normalize trims text fields and removes duplicate tags in place. Tag
// sets are never left nil.
func (d *VehicleDraft) Normalize() {
	d.Make = strings.TrimSpace(d.Make)
	d.Model = strings.TrimSpace(d.Model)
	d.Color = strings.TrimSpace(d.Color)
	d.VIN = strings.TrimSpace(d.VIN)
	d.Features = dedupe(d.Features)
	d.Extras = dedupe(d.Extras)
	if d.Accident == "" {
		d.Accident = AccidentNone
	}
	if d.Fuel == "" {
		d.Fuel = FuelGasoline
	}
	if d.Transmission == "" {
		d.Transmission = TransmissionManual
	}
}

// Validate checks the draft against the controlled vocabularies and the
// fields the backend always requires. It does not contact the backend.
func (d *VehicleDraft) Validate() *FieldErrors {
	errs := &FieldErrors{}

	if d.Make == "" {
		errs.Add(FieldMake, "This field may not be blank.")
	}
	if d.Model == "" {
		errs.Add(FieldModel, "This field may not be blank.")
	}
	if d.Year < 0 {
		errs.Add(FieldYear, "Must not be negative.")
	}
	if d.Odometer < 0 {
		errs.Add(FieldOdometer, "Must not be negative.")
	}
	if d.Price < 0 {
		errs.Add(FieldPrice, "Must not be negative.")
	}

	switch d.Accident {
	case AccidentNone, AccidentYes:
	default:
		errs.Add(FieldAccident, fmt.Sprintf("%q is not a valid choice.", d.Accident))
	}
	switch d.Fuel {
	case FuelGasoline, FuelDiesel:
	default:
		errs.Add(FieldFuel, fmt.Sprintf("%q is not a valid choice.", d.Fuel))
	}
	switch d.Transmission {
	case TransmissionManual, TransmissionAutomatic:
	default:
		errs.Add(FieldTransmission, fmt.Sprintf("%q is not a valid choice.", d.Transmission))
	}

	for _, tag := range d.Features {
		if !IsFeature(tag) {
			errs.Add(FieldFeatures, fmt.Sprintf("%q is not a known feature.", tag))
		}
	}
	for _, tag := range d.Extras {
		if !IsExtra(tag) {
			errs.Add(FieldExtras, fmt.Sprintf("%q is not a known extra.", tag))
		}
	}

	if errs.Empty() {
		return nil
	}
	return errs
}
