package models

// CarFeatures is one car listing as scored by the pricing model.
type CarFeatures struct {
	ModelKey                string  `json:"model_key"`
	Mileage                 float64 `json:"mileage"`
	EnginePower             float64 `json:"engine_power"`
	Fuel                    string  `json:"fuel"`
	PaintColor              string  `json:"paint_color"`
	CarType                 string  `json:"car_type"`
	PrivateParkingAvailable bool    `json:"private_parking_available"`
	HasGPS                  bool    `json:"has_gps"`
	HasAirConditioning      bool    `json:"has_air_conditioning"`
	AutomaticCar            bool    `json:"automatic_car"`
	HasGetaroundConnect     bool    `json:"has_getaround_connect"`
	HasSpeedRegulator       bool    `json:"has_speed_regulator"`
	WinterTires             bool    `json:"winter_tires"`
}

// Numeric returns the numeric features keyed by column name.
func (f CarFeatures) Numeric() map[string]float64 {
	return map[string]float64{
		"mileage":      f.Mileage,
		"engine_power": f.EnginePower,
	}
}

// Categorical returns the string features keyed by column name.
func (f CarFeatures) Categorical() map[string]string {
	return map[string]string{
		"model_key":   f.ModelKey,
		"fuel":        f.Fuel,
		"paint_color": f.PaintColor,
		"car_type":    f.CarType,
	}
}

// Flags returns the boolean features keyed by column name.
func (f CarFeatures) Flags() map[string]bool {
	return map[string]bool{
		"private_parking_available": f.PrivateParkingAvailable,
		"has_gps":                   f.HasGPS,
		"has_air_conditioning":      f.HasAirConditioning,
		"automatic_car":             f.AutomaticCar,
		"has_getaround_connect":     f.HasGetaroundConnect,
		"has_speed_regulator":       f.HasSpeedRegulator,
		"winter_tires":              f.WinterTires,
	}
}
