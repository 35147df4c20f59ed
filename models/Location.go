package models

// GeoPoint is a GeoJSON point; coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type" bson:"type" validate:"omitempty,eq=Point"`
	Coordinates [2]float64 `json:"coordinates" bson:"coordinates" validate:"lnglat"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

func (p GeoPoint) Lng() float64 { return p.Coordinates[0] }
func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

func (p GeoPoint) orDefault() GeoPoint {
	if p.Type == "" {
		p.Type = "Point"
	}
	return p
}
