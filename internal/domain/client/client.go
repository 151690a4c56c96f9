package client

import (
	"regexp"
	"strings"
	"time"

	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ClientStatus represents the status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "Active"
	ClientStatusInactive ClientStatus = "Inactive"
)

// Client represents a buyer holding one or more unit allocations.
// It is the aggregate root of the client context, identified by its
// membership number rather than a surrogate ID.
//
// AmountPayable is derived: it is the sum of the discounted prices of the
// client's live allocations and is recomputed whenever allocations change.
type Client struct {
	MembershipNumber string
	Name             string
	CNIC             string
	PassportNumber   string
	Address          string
	Email            string
	ContactNumber    string
	OtherContact     string
	NextOfKin        string
	AgentName        string
	InstallmentPlan  string
	Status           ClientStatus
	AmountPayable    decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewClient creates a new active client with the given membership number
func NewClient(membershipNumber, name string) (*Client, error) {
	if _, err := ParseMembershipNumber(membershipNumber); err != nil {
		return nil, err
	}
	if err := validateClientName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Client{
		MembershipNumber: membershipNumber,
		Name:             name,
		Status:           ClientStatusActive,
		InstallmentPlan:  "Monthly Plan",
		AmountPayable:    decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// SetContact sets the client's contact information
func (c *Client) SetContact(email, contactNumber, otherContact string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	c.Email = email
	c.ContactNumber = contactNumber
	c.OtherContact = otherContact
	c.UpdatedAt = time.Now()
	return nil
}

// SetIdentity sets the client's identity documents
func (c *Client) SetIdentity(cnic, passportNumber string) {
	c.CNIC = cnic
	c.PassportNumber = passportNumber
	c.UpdatedAt = time.Now()
}

// SetAmountPayable replaces the derived aggregate payable total
func (c *Client) SetAmountPayable(total decimal.Decimal) {
	c.AmountPayable = total
	c.UpdatedAt = time.Now()
}

// Activate marks the client as active
func (c *Client) Activate() {
	c.Status = ClientStatusActive
	c.UpdatedAt = time.Now()
}

// Deactivate marks the client as inactive
func (c *Client) Deactivate() {
	c.Status = ClientStatusInactive
	c.UpdatedAt = time.Now()
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

func validateClientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
