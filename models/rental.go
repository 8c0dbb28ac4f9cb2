package models

type RentalDelay struct {
	RentalID                       int64    `gorm:"column:rental_id;primaryKey" json:"rental_id"`
	CarID                          int64    `gorm:"column:car_id" json:"car_id"`
	CheckinType                    string   `gorm:"column:checkin_type" json:"checkin_type"`
	State                          string   `gorm:"column:state" json:"state"`
	DelayAtCheckoutInMinutes       *float64 `gorm:"column:delay_at_checkout_in_minutes" json:"delay_at_checkout_in_minutes"`
	PreviousEndedRentalID          *int64   `gorm:"column:previous_ended_rental_id" json:"previous_ended_rental_id"`
	TimeDeltaWithPreviousInMinutes *float64 `gorm:"column:time_delta_with_previous_rental_in_minutes" json:"time_delta_with_previous_rental_in_minutes"`
}

func (RentalDelay) TableName() string { return "rental_delays" }

type RentalPrice struct {
	ID                int64   `gorm:"column:id;primaryKey" json:"id"`
	ModelKey          string  `gorm:"column:model_key" json:"model_key"`
	RentalPricePerDay float64 `gorm:"column:rental_price_per_day" json:"rental_price_per_day"`
}

func (RentalPrice) TableName() string { return "rental_prices" }
