package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func validDraft() VehicleDraft {
	return VehicleDraft{
		Make:         "BMW",
		Model:        "3er",
		Year:         2020,
		Accident:     AccidentNone,
		Fuel:         FuelDiesel,
		Transmission: TransmissionAutomatic,
		Features:     []string{"ABS", "Bluetooth"},
		Extras:       []string{"Klimaanlage"},
	}
}

func TestDraftNormalize(t *testing.T) {
	d := VehicleDraft{
		Make:     "  VW ",
		Model:    "Golf",
		Features: []string{"USB", "ABS", "USB", "ABS"},
		Extras:   []string{"Ledersitze", "Ledersitze"},
	}
	d.Normalize()

	if d.Make != "VW" {
		t.Errorf("Make = %q", d.Make)
	}
	if !reflect.DeepEqual(d.Features, []string{"USB", "ABS"}) {
		t.Errorf("Features = %v", d.Features)
	}
	if !reflect.DeepEqual(d.Extras, []string{"Ledersitze"}) {
		t.Errorf("Extras = %v", d.Extras)
	}
	if d.Accident != AccidentNone || d.Fuel != FuelGasoline || d.Transmission != TransmissionManual {
		t.Errorf("enum defaults not applied: %+v", d)
	}
}

func TestDraftNormalizeSendsEmptyTagLists(t *testing.T) {
	d := VehicleDraft{Make: "VW", Model: "Golf"}
	d.Normalize()

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"ausstattung":[]`, `"extras":[]`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("encoded draft %s lacks %s", raw, want)
		}
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(d *VehicleDraft)
		wantFields []string
	}{
		{"valid", func(d *VehicleDraft) {}, nil},
		{"blank make", func(d *VehicleDraft) { d.Make = "" }, []string{FieldMake}},
		{"bad fuel", func(d *VehicleDraft) { d.Fuel = "elektro" }, []string{FieldFuel}},
		{"extra in feature list", func(d *VehicleDraft) { d.Features = append(d.Features, "Klimaanlage") }, []string{FieldFeatures}},
		{"feature in extra list", func(d *VehicleDraft) { d.Extras = []string{"ABS"} }, []string{FieldExtras}},
		{"several", func(d *VehicleDraft) { d.Model = ""; d.Transmission = "cvt"; d.Price = -1 }, []string{FieldModel, FieldPrice, FieldTransmission}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			errs := d.Validate()
			if tt.wantFields == nil {
				if errs != nil {
					t.Fatalf("unexpected errors: %+v", errs)
				}
				return
			}
			if errs == nil {
				t.Fatal("expected validation errors")
			}
			if !reflect.DeepEqual(errs.Keys, tt.wantFields) {
				t.Errorf("Keys = %v, want %v", errs.Keys, tt.wantFields)
			}
		})
	}
}

func TestImageResolveURL(t *testing.T) {
	tests := []struct {
		url, base, want string
	}{
		{"/media/cars/1.jpg", "http://api.local:8000/", "http://api.local:8000/media/cars/1.jpg"},
		{"media/cars/1.jpg", "http://api.local:8000", "http://api.local:8000/media/cars/1.jpg"},
		{"https://cdn.example.com/1.jpg", "http://api.local", "https://cdn.example.com/1.jpg"},
		{"", "http://api.local", ""},
	}
	for _, tt := range tests {
		if got := (Image{URL: tt.url}).ResolveURL(tt.base); got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.url, tt.base, got, tt.want)
		}
	}
}

func TestCloneRecordsIsDeep(t *testing.T) {
	in := []VehicleRecord{{ID: 1, VehicleDraft: VehicleDraft{Features: []string{"ABS"}}, Images: []Image{{AssetID: 1}}}}
	out := CloneRecords(in)
	out[0].Features[0] = "USB"
	out[0].Images[0].AssetID = 9
	if in[0].Features[0] != "ABS" || in[0].Images[0].AssetID != 1 {
		t.Error("CloneRecords shares backing arrays with its input")
	}
}
