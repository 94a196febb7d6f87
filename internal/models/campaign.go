package models

import (
	"errors"
	"time"
)

// ComplianceStatus is the review state of a piece of promotional content.
type ComplianceStatus string

const (
	ComplianceCompliant ComplianceStatus = "compliant"
	ComplianceWarning   ComplianceStatus = "warning"
	ComplianceViolation ComplianceStatus = "violation"
	ComplianceNone      ComplianceStatus = "none"
)

// Campaign is a single promotion run by an affiliate. A campaign may
// promote one product and may carry one tracking link; both references
// are optional and an empty string means "none".
type Campaign struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	ProductID   string    `json:"product_id,omitempty"`
	LinkCode    string    `json:"link_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Campaign) Validate() error {
	if c.ID == "" {
		return errors.New("id is required")
	}
	if c.OwnerUserID == "" {
		return errors.New("owner_user_id is required")
	}
	return nil
}

// ContentRecord is a piece of content produced for a campaign (an email,
// a post, a landing page). Records created as part of one send sequence
// may carry an explicit SequenceID; older records do not.
type ContentRecord struct {
	ID         string           `json:"id"`
	CampaignID string           `json:"campaign_id"`
	SequenceID string           `json:"sequence_id,omitempty"`
	Compliance ComplianceStatus `json:"compliance_status"`
	CreatedAt  time.Time        `json:"created_at"`
}

func (cr *ContentRecord) Validate() error {
	if cr.ID == "" {
		return errors.New("id is required")
	}
	if cr.CampaignID == "" {
		return errors.New("campaign_id is required")
	}
	return nil
}

// Product is a promotable item owned by a developer.
type Product struct {
	ID               string `json:"id"`
	OwnerDeveloperID string `json:"owner_developer_id"`
	Name             string `json:"name"`
}

func (p *Product) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
