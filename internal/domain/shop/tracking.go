package shop

// TrackingAnnotation is locally persisted courier metadata joined onto a
// commerce order by order id. The commerce source cannot store courier
// fields, so this store is the system's durable shipment state.
type TrackingAnnotation struct {
	OrderID             string `json:"id"`
	CourierTrackingCode string `json:"courier_tracking_code"`
	CourierProvider     string `json:"courier_provider"`
	CourierStatus       string `json:"courier_status"`
}
