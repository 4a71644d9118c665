package entity

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

func (t TripType) Valid() bool {
	return t == TripOneWay || t == TripRoundTrip
}

type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium-economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	default:
		return false
	}
}

type Passengers struct {
	Adults   int
	Children int
	Infants  int
}

func (p Passengers) Total() int {
	return p.Adults + p.Children + p.Infants
}

type SearchCriteria struct {
	OriginCode      string
	DestinationCode string
	DepartureDate   time.Time
	ReturnDate      *time.Time
	TripType        TripType
	Passengers      Passengers
	CabinClass      CabinClass
}

// Key is the canonical form of the criteria, equal for criteria that ask
// the catalog the same question.
func (c SearchCriteria) Key() string {
	returnDate := ""
	if c.ReturnDate != nil {
		returnDate = c.ReturnDate.Format(DateLayout)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s|%d|%d|%d|%s",
		strings.ToUpper(c.OriginCode),
		strings.ToUpper(c.DestinationCode),
		c.DepartureDate.Format(DateLayout),
		returnDate,
		c.TripType,
		c.Passengers.Adults,
		c.Passengers.Children,
		c.Passengers.Infants,
		c.CabinClass,
	)
}
