package model

// peruCities is the seed table, in insertion order.
var peruCities = [...]string{
	"Lima",
	"Arequipa",
	"Trujillo",
	"Chiclayo",
	"Piura",
	"Iquitos",
	"Cusco",
	"Huancayo",
	"Tacna",
	"Ica",
}

// PeruCities returns a fresh copy of the Peruvian city names to seed.
func PeruCities() []string {
	names := make([]string, len(peruCities))
	copy(names, peruCities[:])
	return names
}
