package models

import "time"

// Registration is a submitted landing-form record. RegistrationID is the
// server-generated public key used for every cross-reference; the numeric
// primary key never leaves the process.
type Registration struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	RegistrationID string    `gorm:"uniqueIndex;size:64" json:"registrationId"`
	LastName       string    `gorm:"size:255" json:"lastName"`
	FirstName      string    `gorm:"size:255" json:"firstName"`
	Age            int       `json:"age"`
	Phone          string    `gorm:"size:64" json:"phone"`
	Telegram       string    `gorm:"size:255" json:"telegram"`
	Photo          []byte    `json:"photo,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FullName composes the archive's display name: surname first.
func (r *Registration) FullName() string {
	return r.LastName + " " + r.FirstName
}

// TestResult is a scored self-test outcome tied to one registration.
// TestData is stored verbatim and never interpreted here.
type TestResult struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	RegistrationID string    `gorm:"index;size:64" json:"registrationId"`
	Level          string    `gorm:"size:64" json:"level"`
	Score          int       `json:"score"`
	TestType       string    `gorm:"size:64" json:"testType"`
	TestData       string    `gorm:"type:text" json:"testData,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ArchiveRecord is one row of the joined export view. Level and Score are
// nil for registrations that have no test result yet; Date carries the test
// timestamp when one exists and the registration timestamp otherwise.
type ArchiveRecord struct {
	FIO      string    `json:"fio"`
	Age      int       `json:"age"`
	Phone    string    `json:"phone"`
	Telegram string    `json:"telegram"`
	Level    *string   `json:"level"`
	Score    *int      `json:"score"`
	Date     time.Time `json:"date"`
}
