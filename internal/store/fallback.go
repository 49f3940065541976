package store

import "building-catalog-service/internal/domain"

// FallbackOrigin is the origin reported when the static list is in use.
const FallbackOrigin = "fallback"

var fallbackProducts = []domain.Product{
	{ID: 1, Name: "PVC Pipe 4 inch", Category: "pipes", Price: "$12.99",
		Description: "High-quality PVC pipe suitable for drainage and irrigation systems.", Icon: "🚿"},
	{ID: 2, Name: "Copper Pipe 1/2 inch", Category: "pipes", Price: "$8.50",
		Description: "Premium copper pipe for plumbing applications.", Icon: "🔧"},
	{ID: 3, Name: "Steel Rebar 10mm", Category: "steel", Price: "$25.99",
		Description: "High-grade steel reinforcement bars for concrete construction.", Icon: "🏗️"},
	{ID: 4, Name: "Steel Angle Bar", Category: "steel", Price: "$18.75",
		Description: "L-shaped steel bars for structural support and framing.", Icon: "📐"},
	{ID: 5, Name: "Acrylic Wall Paint", Category: "paints", Price: "$45.99",
		Description: "Premium interior wall paint with excellent coverage and durability.", Icon: "🎨"},
	{ID: 6, Name: "Metal Primer Paint", Category: "paints", Price: "$32.50",
		Description: "Anti-rust primer paint for metal surfaces.", Icon: "🖌️"},
	{ID: 7, Name: "Ceramic Wash Basin", Category: "bathroom/sanitary", Price: "$89.99",
		Description: "Modern ceramic wash basin with sleek design.", Icon: "🚰"},
	{ID: 8, Name: "Stainless Steel Basin", Category: "bathroom/sanitary", Price: "$125.00",
		Description: "Durable stainless steel kitchen basin with double bowl.", Icon: "🥄"},
	{ID: 9, Name: "Electrical Wire 2.5mm", Category: "electricals", Price: "$1.25",
		Description: "High-quality electrical wire suitable for household wiring.", Icon: "⚡"},
	{ID: 10, Name: "LED Light Bulb 12W", Category: "electricals", Price: "$8.99",
		Description: "Energy-efficient LED bulb with warm white light.", Icon: "💡"},
	{ID: 11, Name: "Hammer 16oz", Category: "tools", Price: "$22.99",
		Description: "Professional grade claw hammer with comfortable grip.", Icon: "🔨"},
	{ID: 12, Name: "Electric Drill Set", Category: "tools", Price: "$89.99",
		Description: "Cordless electric drill with complete bit set.", Icon: "🔩"},
	{ID: 13, Name: "Portland Cement 50kg", Category: "cement", Price: "$15.99",
		Description: "High-strength Portland cement for construction projects.", Icon: "🏭"},
	{ID: 14, Name: "Construction Sand", Category: "cement", Price: "$35.00",
		Description: "Fine construction sand suitable for concrete mixing.", Icon: "⏳"},
	{ID: 15, Name: "Safety Helmet", Category: "others", Price: "$18.50",
		Description: "High-impact safety helmet with adjustable straps.", Icon: "⛑️"},
	{ID: 16, Name: "Work Gloves", Category: "others", Price: "$12.99",
		Description: "Durable work gloves with enhanced grip and protection.", Icon: "🧤"},
}

// FallbackProducts returns a copy of the static product list used when the
// configured source cannot be loaded.
func FallbackProducts() []domain.Product {
	out := make([]domain.Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}
