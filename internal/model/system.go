package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SerialNumbers holds the serial number of each hardware component.
type SerialNumbers struct {
	Processor   string `json:"processer"`
	Motherboard string `json:"motherboard"`
	Storage     string `json:"storage"`
	Cabinet     string `json:"cabinet"`
	Display     string `json:"display"`
	Keyboard    string `json:"keyboard"`
	Mouse       string `json:"mouse"`
}

// System is a persisted workstation record.
type System struct {
	ID                 uuid.UUID     `json:"_id"`
	SystemName         string        `json:"systemName"`
	SystemNumber       string        `json:"systemNumber" validate:"notblank"`
	InvoiceNo          string        `json:"invoiceNo"`
	InvoiceDate        Date          `json:"invoiceDate"`
	Warranty           string        `json:"warranty"`
	WarrantyExpiryDate Date          `json:"warrantyExpiryDate"`
	IsActive           bool          `json:"isActive"`
	Processor          string        `json:"processor"`
	Motherboard        string        `json:"motherboard"`
	RAM                string        `json:"ram"`
	Storage            string        `json:"Storage"`
	GraphicsCard       string        `json:"graphicsCard"`
	OperatingSystem    string        `json:"operatingSystem"`
	Antivirus          string        `json:"antivirus"`
	Cabinet            string        `json:"cabinet"`
	Monitor            string        `json:"monitor"`
	Keyboard           string        `json:"keyboard"`
	Mouse              string        `json:"mouse"`
	Password           string        `json:"password"`
	WifiDongle         string        `json:"wifi_Dongle"`
	SerialNo           SerialNumbers `json:"serialNo"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

func (s *System) GetID() uuid.UUID {
	return s.ID
}

func (s *System) SetID(id uuid.UUID) {
	s.ID = id
}

func (s *System) GetCreatedAt() time.Time {
	return s.CreatedAt
}

func (s *System) SetTimestamps(createdAt, updatedAt time.Time) {
	s.CreatedAt = createdAt
	s.UpdatedAt = updatedAt
}

type systemAlias System

// UnmarshalJSON applies the record default isActive=true.
func (s *System) UnmarshalJSON(data []byte) error {
	alias := systemAlias{IsActive: true}
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*s = System(alias)
	return nil
}
