package entity

// FuelTruck camión cisterna (contenedor móvil).
type FuelTruck struct {
	FuelContainer
	PlateNumber string
	DriverName  string
}
