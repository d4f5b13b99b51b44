package models

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// BiodataStatus is the premium workflow state of a profile.
type BiodataStatus string

const (
	StatusNotPremium BiodataStatus = "not_premium"
	StatusPending    BiodataStatus = "pending"
	StatusPremium    BiodataStatus = "premium"
)

const (
	BiodataTypeMale   = "Male"
	BiodataTypeFemale = "Female"
)

type Biodata struct {
	ID                    bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	BiodataID             int           `bson:"biodataId,omitempty" json:"biodataId"`
	Email                 string        `bson:"email,omitempty" json:"email,omitempty"`
	BiodataType           string        `bson:"biodataType,omitempty" json:"biodataType,omitempty"` // Male, Female
	Name                  string        `bson:"name,omitempty" json:"name,omitempty"`
	Image                 string        `bson:"image,omitempty" json:"image,omitempty"`
	DateOfBirth           string        `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Height                string        `bson:"height,omitempty" json:"height,omitempty"`
	Weight                string        `bson:"weight,omitempty" json:"weight,omitempty"`
	Age                   int           `bson:"age,omitempty" json:"age,omitempty"`
	Occupation            string        `bson:"occupation,omitempty" json:"occupation,omitempty"`
	Race                  string        `bson:"race,omitempty" json:"race,omitempty"`
	FathersName           string        `bson:"fathersName,omitempty" json:"fathersName,omitempty"`
	MothersName           string        `bson:"mothersName,omitempty" json:"mothersName,omitempty"`
	PermanentDivision     string        `bson:"permanentDivision,omitempty" json:"permanentDivision,omitempty"`
	PresentDivision       string        `bson:"presentDivision,omitempty" json:"presentDivision,omitempty"`
	ExpectedPartnerAge    string        `bson:"expectedPartnerAge,omitempty" json:"expectedPartnerAge,omitempty"`
	ExpectedPartnerHeight string        `bson:"expectedPartnerHeight,omitempty" json:"expectedPartnerHeight,omitempty"`
	ExpectedPartnerWeight string        `bson:"expectedPartnerWeight,omitempty" json:"expectedPartnerWeight,omitempty"`
	Mobile                string        `bson:"mobile,omitempty" json:"mobile,omitempty"`
	BioDataStatus         BiodataStatus `bson:"bioDataStatus,omitempty" json:"bioDataStatus,omitempty"`
}

// Status treats a missing status as not_premium.
func (b Biodata) Status() BiodataStatus {
	if b.BioDataStatus == "" {
		return StatusNotPremium
	}
	return b.BioDataStatus
}

// Card is the public listing projection of a biodata.
func (b Biodata) Card() BiodataCard {
	return BiodataCard{
		ID:                b.ID,
		BiodataID:         b.BiodataID,
		BiodataType:       b.BiodataType,
		Image:             b.Image,
		PermanentDivision: b.PermanentDivision,
		Age:               b.Age,
		Occupation:        b.Occupation,
	}
}

type BiodataCard struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	BiodataID         int           `bson:"biodataId" json:"biodataId"`
	BiodataType       string        `bson:"biodataType,omitempty" json:"biodataType,omitempty"`
	Image             string        `bson:"image,omitempty" json:"image,omitempty"`
	PermanentDivision string        `bson:"permanentDivision,omitempty" json:"permanentDivision,omitempty"`
	Age               int           `bson:"age,omitempty" json:"age,omitempty"`
	Occupation        string        `bson:"occupation,omitempty" json:"occupation,omitempty"`
}

// BiodataFilter narrows biodata counts and listings. Zero fields match all.
type BiodataFilter struct {
	BiodataType string
	Status      BiodataStatus
}

// ProfileKey resolves a biodata either by owner email or by biodataId.
// Exactly one of the two is set.
type ProfileKey struct {
	Email     string
	BiodataID int
}

func (k ProfileKey) ByEmail() bool { return k.Email != "" }

func (k ProfileKey) String() string {
	if k.ByEmail() {
		return "email:" + k.Email
	}
	return "biodataId:" + strconv.Itoa(k.BiodataID)
}

// ParseProfileKey reads a path segment that is either an email (contains
// "@") or a positive integer biodataId.
func ParseProfileKey(raw string) (ProfileKey, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "@") {
		return ProfileKey{Email: raw}, nil
	}
	id, err := ParseBiodataID(raw)
	if err != nil {
		return ProfileKey{}, err
	}
	return ProfileKey{BiodataID: id}, nil
}

// ParseBiodataID parses a positive integer biodata identifier.
func ParseBiodataID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid biodataId %q", raw)
	}
	return id, nil
}
