package models

// DocumentType identifies which document layout the extractor should target.
type DocumentType string

const (
	// BusinessLicense is a Korean business registration certificate (사업자등록증).
	BusinessLicense DocumentType = "business_license"

	// Bankbook is a Korean bankbook / account passbook (통장 사본).
	Bankbook DocumentType = "bankbook"
)

// Field names used as keys in DocumentFields and in completion prompts.
const (
	FieldBusinessNumber  = "business_number"
	FieldCorporateNumber = "corporate_number"
	FieldEntityName      = "entity_name"
	FieldRepresentative  = "representative"
	FieldBusinessAddress = "business_address"
	FieldHQAddress       = "hq_address"
	FieldBusinessSector  = "business_sector"
	FieldBusinessType    = "business_type"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldFax             = "fax"
	FieldBankName        = "bank_name"
	FieldAccountNumber   = "account_number"
	FieldAccountHolder   = "account_holder"
)

// DocumentFields is the pipeline's output: one string per recognized field.
// An empty string means the field was not found; no field is mandatory.
type DocumentFields struct {
	BusinessNumber  string `json:"business_number,omitempty"`  // 사업자등록번호
	CorporateNumber string `json:"corporate_number,omitempty"` // 법인등록번호
	EntityName      string `json:"entity_name,omitempty"`      // 법인명/상호
	Representative  string `json:"representative,omitempty"`   // 대표자
	BusinessAddress string `json:"business_address,omitempty"` // 사업장 소재지
	HQAddress       string `json:"hq_address,omitempty"`       // 본점 소재지
	BusinessSector  string `json:"business_sector,omitempty"`  // 업태
	BusinessType    string `json:"business_type,omitempty"`    // 종목
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Fax             string `json:"fax,omitempty"`
	BankName        string `json:"bank_name,omitempty"`      // 은행명
	AccountNumber   string `json:"account_number,omitempty"` // 계좌번호
	AccountHolder   string `json:"account_holder,omitempty"` // 예금주
}

// fieldAccessors maps field names to pointer accessors, keeping Get/Set/Merge
// and the name list in one place.
func (f *DocumentFields) fieldPtr(name string) *string {
	switch name {
	case FieldBusinessNumber:
		return &f.BusinessNumber
	case FieldCorporateNumber:
		return &f.CorporateNumber
	case FieldEntityName:
		return &f.EntityName
	case FieldRepresentative:
		return &f.Representative
	case FieldBusinessAddress:
		return &f.BusinessAddress
	case FieldHQAddress:
		return &f.HQAddress
	case FieldBusinessSector:
		return &f.BusinessSector
	case FieldBusinessType:
		return &f.BusinessType
	case FieldEmail:
		return &f.Email
	case FieldPhone:
		return &f.Phone
	case FieldFax:
		return &f.Fax
	case FieldBankName:
		return &f.BankName
	case FieldAccountNumber:
		return &f.AccountNumber
	case FieldAccountHolder:
		return &f.AccountHolder
	}
	return nil
}

// FieldNames lists every field name in stable display order.
func FieldNames() []string {
	return []string{
		FieldBusinessNumber,
		FieldCorporateNumber,
		FieldEntityName,
		FieldRepresentative,
		FieldBusinessAddress,
		FieldHQAddress,
		FieldBusinessSector,
		FieldBusinessType,
		FieldEmail,
		FieldPhone,
		FieldFax,
		FieldBankName,
		FieldAccountNumber,
		FieldAccountHolder,
	}
}

// Get returns the value of the named field, or "" for unknown names.
func (f *DocumentFields) Get(name string) string {
	if p := f.fieldPtr(name); p != nil {
		return *p
	}
	return ""
}

// Set assigns the named field. Unknown names are ignored.
func (f *DocumentFields) Set(name, value string) {
	if p := f.fieldPtr(name); p != nil {
		*p = value
	}
}

// IsEmpty reports whether no field was extracted.
func (f *DocumentFields) IsEmpty() bool {
	for _, name := range FieldNames() {
		if f.Get(name) != "" {
			return false
		}
	}
	return true
}

// EmptyFields returns the names of fields with no extracted value.
func (f *DocumentFields) EmptyFields() []string {
	var empty []string
	for _, name := range FieldNames() {
		if f.Get(name) == "" {
			empty = append(empty, name)
		}
	}
	return empty
}

// Merge copies non-empty fields from other into f, without overwriting
// fields that already hold a value. Returns the names of fields filled.
func (f *DocumentFields) Merge(other *DocumentFields) []string {
	var filled []string
	for _, name := range FieldNames() {
		if f.Get(name) == "" && other.Get(name) != "" {
			f.Set(name, other.Get(name))
			filled = append(filled, name)
		}
	}
	return filled
}
