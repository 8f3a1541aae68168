// Package sample bundles a small parcel-domain document set used to
// smoke-test ingestion and retrieval against a fresh namespace.
package sample

import "github.com/parcelam/docdex/internal/domain/document"

// Documents returns the bundled sample document set. A fresh slice per call:
// callers may not mutate shared state.
func Documents() []document.Document {
	return []document.Document{
		document.New("doc1",
			"Parcel tracking allows customers to monitor their shipment in real-time. Enter your tracking number on the dashboard to see current location, delivery status, and estimated arrival time. Tracking updates are provided at each checkpoint including pickup, transit, and delivery.",
			"How to Track Your Parcel",
			map[string]any{"category": "tracking"}),
		document.New("doc2",
			"Package delivery times vary by service level: Standard (5-7 business days), Express (2-3 business days), and Same-Day (for local deliveries within the same city). Delivery times exclude weekends and holidays. Remote areas may require additional time.",
			"Delivery Time Estimates",
			map[string]any{"category": "shipping"}),
		document.New("doc3",
			"To create a shipping label, log into your account and navigate to 'Create Shipment'. Enter recipient address, package dimensions, weight, and select service level. Payment is processed automatically using your saved payment method. The label can be printed or downloaded as PDF.",
			"Creating Shipping Labels",
			map[string]any{"category": "shipping"}),
		document.New("doc4",
			"If your package shows 'delivered' but you haven't received it, wait 24 hours as it may have been left with a neighbor or in a safe location. Check your delivery confirmation email for specific delivery instructions. If still not found, contact support within 7 days.",
			"Missing Package Resolution",
			map[string]any{"category": "support"}),
		document.New("doc5",
			"International shipping requires customs declaration forms. Prohibited items include firearms, hazardous materials, perishable goods, and certain electronics. Duties and taxes may apply and are typically the recipient's responsibility. Check country-specific restrictions before shipping.",
			"International Shipping Guide",
			map[string]any{"category": "international"}),
		document.New("doc6",
			"Package insurance is available for valuable items. Standard coverage includes up to $100 for Express shipments and $50 for Standard. Additional insurance can be purchased at checkout. To file a claim, provide proof of value and photos of damaged items within 14 days of delivery.",
			"Package Insurance and Claims",
			map[string]any{"category": "insurance"}),
		document.New("doc7",
			"Business accounts offer bulk shipping discounts, API integration, monthly billing, and dedicated account management. Features include address book management, shipping analytics, and multi-user support. Apply online with business documentation for approval.",
			"Business Account Benefits",
			map[string]any{"category": "business"}),
		document.New("doc8",
			"Parcel pickup can be scheduled through the app or website. Standard pickup is free for shipments over $50. Same-day pickup requires scheduling before 2 PM. Couriers will collect from your specified address during the chosen time window. Have packages ready and labeled.",
			"Scheduling Package Pickup",
			map[string]any{"category": "pickup"}),
	}
}
