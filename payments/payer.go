package payments

// PayerType distinguishes how the payer is known to MercadoPago.
type PayerType string

const (
	PayerCustomer   PayerType = "customer"
	PayerRegistered PayerType = "registered"
	PayerGuest      PayerType = "guest"
)

// EntityType is the legal nature of the payer.
type EntityType string

const (
	EntityIndividual  EntityType = "individual"
	EntityAssociation EntityType = "association"
)

// IdentificationType is the national document type of the payer
// (CPF/CNPJ in Brazil, DNI in Argentina, ...).
type IdentificationType string

const (
	IdentificationCPF  IdentificationType = "CPF"
	IdentificationCNPJ IdentificationType = "CNPJ"
	IdentificationCUIT IdentificationType = "CUIT"
	IdentificationCUIL IdentificationType = "CUIL"
	IdentificationDNI  IdentificationType = "DNI"
	IdentificationCURP IdentificationType = "CURP"
	IdentificationRFC  IdentificationType = "RFC"
	IdentificationCC   IdentificationType = "CC"
	IdentificationRUT  IdentificationType = "RUT"
	IdentificationCI   IdentificationType = "CI"
)

// Identification is the payer's national document.
type Identification struct {
	Type   IdentificationType `json:"type"`
	Number string             `json:"number"`
}

// Payer is the party making the payment. Email is the only field the
// API requires on creation.
type Payer struct {
	Type           PayerType       `json:"type,omitempty"`
	EntityType     EntityType      `json:"entity_type,omitempty"`
	ID             string          `json:"id,omitempty"`
	Email          string          `json:"email"`
	Identification *Identification `json:"identification,omitempty"`
	FirstName      string          `json:"first_name,omitempty"`
	LastName       string          `json:"last_name,omitempty"`
}

// PhoneNumber is an area code / number pair.
type PhoneNumber struct {
	AreaCode string `json:"area_code"`
	Number   string `json:"number"`
}

// PayerAddress is the payer's billing address under additional_info.
type PayerAddress struct {
	ZipCode      string `json:"zip_code"`
	StreetName   string `json:"street_name"`
	StreetNumber int    `json:"street_number"`
}

// AdditionalInfoPayer is the extended payer block under additional_info,
// used for scoring.
type AdditionalInfoPayer struct {
	FirstName        string        `json:"first_name,omitempty"`
	LastName         string        `json:"last_name,omitempty"`
	Phone            *PhoneNumber  `json:"phone,omitempty"`
	Address          *PayerAddress `json:"address,omitempty"`
	RegistrationDate string        `json:"registration_date,omitempty"`
}
