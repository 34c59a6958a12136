package scout

import "context"

// Field keys of a structured company answer, as exchanged with the model.
const (
	FieldCompanyName = "company_name"
	FieldWebsite     = "website"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldIndustry    = "industry"
)

// RecordFields lists the field keys in schema order.
var RecordFields = []string{
	FieldCompanyName,
	FieldWebsite,
	FieldEmail,
	FieldPhone,
	FieldAddress,
	FieldDescription,
	FieldCategory,
	FieldIndustry,
}

// CandidateRecord is the model's structured answer. A nil field means the
// model did not report a value; no field is required.
type CandidateRecord struct {
	CompanyName *string `json:"companyName,omitempty"`
	Website     *string `json:"website,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Industry    *string `json:"industry,omitempty"`
}

func (r *CandidateRecord) field(key string) **string {
	switch key {
	case FieldCompanyName:
		return &r.CompanyName
	case FieldWebsite:
		return &r.Website
	case FieldEmail:
		return &r.Email
	case FieldPhone:
		return &r.Phone
	case FieldAddress:
		return &r.Address
	case FieldDescription:
		return &r.Description
	case FieldCategory:
		return &r.Category
	case FieldIndustry:
		return &r.Industry
	}
	return nil
}

// Set assigns value to the field named key.
// Returns false if key is not a record field.
func (r *CandidateRecord) Set(key, value string) bool {
	f := r.field(key)
	if f == nil {
		return false
	}
	*f = &value
	return true
}

// Get returns the value of the field named key and whether it is present.
func (r *CandidateRecord) Get(key string) (string, bool) {
	f := r.field(key)
	if f == nil || *f == nil {
		return "", false
	}
	return **f, true
}

// Present returns the keys of all present fields in schema order.
func (r *CandidateRecord) Present() []string {
	var keys []string
	for _, key := range RecordFields {
		if _, ok := r.Get(key); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// Clone returns a deep copy of the record.
func (r *CandidateRecord) Clone() *CandidateRecord {
	out := &CandidateRecord{}
	for _, key := range RecordFields {
		if v, ok := r.Get(key); ok {
			out.Set(key, v)
		}
	}
	return out
}

// Completer sends a prompt to a language model and returns its completion.
type Completer interface {
	// Complete performs a single completion.
	// Returns EQUOTA for quota or billing errors and EUNAVAILABLE for
	// transport and availability errors.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Extractor turns a page bundle into a structured company record.
type Extractor interface {
	// Extract asks the model for the company facts in bundle.
	// Returns EQUOTA, EUNAVAILABLE or EUNPARSABLE on failure.
	Extract(ctx context.Context, bundle *PageBundle) (*CandidateRecord, error)
}
