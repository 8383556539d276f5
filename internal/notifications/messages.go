package notifications

import (
	"fmt"
	"strconv"
)

func naira(amount float64) string {
	return "₦" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// NewBidMessage is sent to the seller when a bid lands on their listing.
func NewBidMessage(amount float64, listingTitle, buyerName string) string {
	return fmt.Sprintf("New bid of %s placed on your listing %q by %s.", naira(amount), listingTitle, buyerName)
}

// OutbidMessage is sent to the previous leader when a higher bid lands.
func OutbidMessage(listingTitle string, amount float64) string {
	return fmt.Sprintf("You have been outbid on %q. The new highest bid is %s.", listingTitle, naira(amount))
}

// WonBidMessage is sent to the leading bidder when the seller settles.
func WonBidMessage(listingTitle string, amount float64) string {
	return fmt.Sprintf("Congratulations! You won the bid for %q with a bid of %s.", listingTitle, naira(amount))
}

// KYCApprovedMessage is sent when an admin approves an identity document.
func KYCApprovedMessage() string {
	return "Your identity verification has been approved."
}

// KYCRejectedMessage is sent when an admin rejects an identity document.
func KYCRejectedMessage() string {
	return "Your identity verification was rejected. Please submit a new document."
}
