package models

// ServiceType enumerates the cleaning jobs the business performs.
type ServiceType string

const (
	ServiceSump ServiceType = "sump"
	ServiceTank ServiceType = "tank"
	ServiceBoth ServiceType = "both"
)

// Valid reports whether t is one of the known service types.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceSump, ServiceTank, ServiceBoth:
		return true
	}
	return false
}

// ServiceRecord captures one customer service visit. The JSON shape is also
// the persisted shape.
type ServiceRecord struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	ServiceDate string      `json:"serviceDate"` // YYYY-MM-DD
	ServiceType ServiceType `json:"serviceType"`
	Price       float64     `json:"price"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   string      `json:"createdAt"`
}

// RecordInput carries the caller supplied fields of a new record.
type RecordInput struct {
	Name        string      `json:"name" binding:"required"`
	Phone       string      `json:"phone" binding:"required"`
	Address     string      `json:"address" binding:"required"`
	ServiceDate string      `json:"serviceDate" binding:"required,datetime=2006-01-02"`
	ServiceType ServiceType `json:"serviceType" binding:"required,oneof=sump tank both"`
	Price       float64     `json:"price" binding:"gte=0,finite"`
	Notes       string      `json:"notes"`
}

// RecordPatch lists the fields an update may replace. Nil fields are left untouched.
type RecordPatch struct {
	Name        *string      `json:"name,omitempty" binding:"omitempty,min=1"`
	Phone       *string      `json:"phone,omitempty" binding:"omitempty,min=1"`
	Address     *string      `json:"address,omitempty" binding:"omitempty,min=1"`
	ServiceDate *string      `json:"serviceDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	ServiceType *ServiceType `json:"serviceType,omitempty" binding:"omitempty,oneof=sump tank both"`
	Price       *float64     `json:"price,omitempty" binding:"omitempty,gte=0,finite"`
	Notes       *string      `json:"notes,omitempty"`
}

// Apply copies the supplied patch fields onto r.
func (p RecordPatch) Apply(r *ServiceRecord) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.Address != nil {
		r.Address = *p.Address
	}
	if p.ServiceDate != nil {
		r.ServiceDate = *p.ServiceDate
	}
	if p.ServiceType != nil {
		r.ServiceType = *p.ServiceType
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}

// Empty reports whether the patch carries no fields.
func (p RecordPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Address == nil && p.ServiceDate == nil &&
		p.ServiceType == nil && p.Price == nil && p.Notes == nil
}
