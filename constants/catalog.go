package constants

import "strings"

// Services is the closed catalog of service categories artisans can
// register under.
var Services = []string{
	"Electrical",
	"Plumbing",
	"Carpentry",
	"Painting",
	"Masonry",
	"Tiling",
	"POP/False Ceiling",
	"Welding/Fabrication",
	"Generator Repair",
	"AC Repair",
	"Cleaning",
	"Laundry",
	"Hairdressing",
	"Tailoring",
	"Barbing",
	"Auto Mechanics",
	"Aluminum Works",
	"Furniture Making",
	"Upholstery",
	"Pest Control",
	"Satellite Installation",
	"Refrigerator Repair",
	"Gas Cooker Repair",
	"Door & Window Installation",
	"Iron Bending",
	"Roofing",
	"Block Moulding",
	"Landscaping",
	"Interlocking",
	"Screeding",
}

// Locations is the set of cities the marketplace operates in.
var Locations = []string{
	"Lagos",
	"Abuja",
	"Port Harcourt",
	"Ibadan",
	"Kano",
	"Enugu",
	"Benin City",
	"Kaduna",
	"Jos",
	"Abeokuta",
	"Ilorin",
	"Owerri",
	"Makurdi",
	"Akure",
	"Osogbo",
	"Uyo",
	"Calabar",
	"Warri",
	"Asaba",
	"Sokoto",
	"Maiduguri",
	"Yola",
	"Bauchi",
	"Minna",
	"Gombe",
	"Onitsha",
	"Awka",
	"Abakaliki",
	"Lokoja",
	"Katsina",
	"Zaria",
	"Eket",
	"Ado Ekiti",
	"Oshogbo",
	"Umuahia",
	"Jalingo",
	"Birnin Kebbi",
	"Gusau",
	"Damaturu",
	"Dutse",
}

func IsKnownService(s string) bool {
	for _, known := range Services {
		if strings.EqualFold(known, s) {
			return true
		}
	}
	return false
}

func IsKnownLocation(l string) bool {
	for _, known := range Locations {
		if strings.EqualFold(known, l) {
			return true
		}
	}
	return false
}
