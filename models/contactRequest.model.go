package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ContactStatus string

const (
	ContactPending  ContactStatus = "pending"
	ContactApproved ContactStatus = "approved"
)

// HiddenUntilApproved replaces contact details on requests that an admin has
// not approved yet.
const HiddenUntilApproved = "Hidden until approved"

type ContactRequest struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	BiodataID     NumericID     `bson:"biodataId" json:"biodataId"`
	UserEmail     string        `bson:"userEmail" json:"userEmail"`
	UserName      string        `bson:"userName,omitempty" json:"userName,omitempty"`
	Amount        Amount        `bson:"amount" json:"amount"`
	Status        ContactStatus `bson:"status" json:"status"`
	RequestAt     time.Time     `bson:"requestAt" json:"requestAt"`
	ApprovedAt    *time.Time    `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	PaymentMethod []string      `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	TransactionID string        `bson:"transactionId" json:"transactionId"`
}

// ContactRequestWithBiodata is a request joined with the profile it targets.
type ContactRequestWithBiodata struct {
	ContactRequest `bson:",inline"`
	Biodata        Biodata `bson:"biodataInfo" json:"biodataInfo"`
}

// ContactView is what a requester sees about a requested profile.
type ContactView struct {
	BiodataID int           `json:"biodataId"`
	Status    ContactStatus `json:"status"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Mobile    string        `json:"mobile"`
}

// View projects the request against its biodata. Email and mobile are only
// revealed once the request is approved; every read path that exposes
// contact details goes through here.
func (r ContactRequest) View(b Biodata) ContactView {
	v := ContactView{
		BiodataID: r.BiodataID.Int(),
		Status:    r.Status,
		Name:      b.Name,
		Email:     HiddenUntilApproved,
		Mobile:    HiddenUntilApproved,
	}
	if r.Status == ContactApproved {
		v.Email = b.Email
		v.Mobile = b.Mobile
	}
	return v
}

// TotalRevenue sums the amount of approved requests. Other statuses do not
// contribute.
func TotalRevenue(requests []ContactRequest) float64 {
	var total float64
	for _, r := range requests {
		if r.Status == ContactApproved {
			total += r.Amount.Float64()
		}
	}
	return total
}
