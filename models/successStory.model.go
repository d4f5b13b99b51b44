package models

import "go.mongodb.org/mongo-driver/v2/bson"

type SuccessStory struct {
	ID               bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	SelfBiodataID    string        `bson:"selfBiodataId" json:"selfBiodataId"`
	PartnerBiodataID string        `bson:"partnerBiodataId" json:"partnerBiodataId"`
	CoupleImage      string        `bson:"coupleImage,omitempty" json:"coupleImage,omitempty"`
	MarriageDate     string        `bson:"marriageDate,omitempty" json:"marriageDate,omitempty"`
	ReviewStar       float64       `bson:"reviewStar,omitempty" json:"reviewStar,omitempty"`
	Review           string        `bson:"review,omitempty" json:"review,omitempty"`
}

// CoupleMember is the slice of a biodata shown next to a success story.
type CoupleMember struct {
	Name              string `bson:"name,omitempty" json:"name,omitempty"`
	Image             string `bson:"image,omitempty" json:"image,omitempty"`
	BiodataID         int    `bson:"biodataId" json:"biodataId"`
	PermanentDivision string `bson:"permanentDivision,omitempty" json:"permanentDivision,omitempty"`
}

func NewCoupleMember(b Biodata) CoupleMember {
	return CoupleMember{
		Name:              b.Name,
		Image:             b.Image,
		BiodataID:         b.BiodataID,
		PermanentDivision: b.PermanentDivision,
	}
}

// SuccessStoryFull joins a story with both referenced biodatas. The self
// side is reported as "female" and the partner side as "male".
type SuccessStoryFull struct {
	SuccessStory `bson:",inline"`
	Female       CoupleMember `bson:"female" json:"female"`
	Male         CoupleMember `bson:"male" json:"male"`
}
