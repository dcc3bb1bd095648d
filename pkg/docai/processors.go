package docai

// ProcessorType describes a known Document AI processor type. Actual
// processor IDs are project-specific and discovered via ListProcessors.
type ProcessorType struct {
	Type             string   `json:"type" yaml:"type"`
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description" yaml:"description"`
	Category         string   `json:"category" yaml:"category"`
	Capabilities     []string `json:"capabilities" yaml:"capabilities"`
	MaxPagesOnline   int      `json:"max_pages_online" yaml:"max_pages_online"`
	EntityExtraction bool     `json:"entity_extraction" yaml:"entity_extraction"`
}

// ProcessorCategories orders the catalog for display.
var ProcessorCategories = []string{"General", "Specialized", "Financial", "Tax", "Identity"}

// ProcessorTypes is the catalog of processor types the showcase knows about.
var ProcessorTypes = []ProcessorType{
	{
		Type:           "OCR_PROCESSOR",
		Name:           "Enterprise Document OCR",
		Description:    "Extract text, handwriting, and layout from documents with high accuracy",
		Category:       "General",
		Capabilities:   []string{"text", "handwriting", "layout", "languages"},
		MaxPagesOnline: 15,
	},
	{
		Type:           "FORM_PARSER_PROCESSOR",
		Name:           "Form Parser",
		Description:    "Extract form fields (key-value pairs), tables, and checkboxes from structured documents",
		Category:       "General",
		Capabilities:   []string{"text", "tables", "form_fields", "checkboxes"},
		MaxPagesOnline: 15,
	},
	{
		Type:           "LAYOUT_PARSER_PROCESSOR",
		Name:           "Layout Parser",
		Description:    "Detect document layout structure including headings, paragraphs, lists, and tables",
		Category:       "General",
		Capabilities:   []string{"text", "layout", "paragraphs", "tables", "headings"},
		MaxPagesOnline: 15,
	},
	{
		Type:             "INVOICE_PROCESSOR",
		Name:             "Invoice Parser",
		Description:      "Extract key fields from invoices: vendor, dates, amounts, line items",
		Category:         "Specialized",
		Capabilities:     []string{"text", "entities", "tables"},
		MaxPagesOnline:   15,
		EntityExtraction: true,
	},
	{
		Type:             "EXPENSE_PROCESSOR",
		Name:             "Expense Parser",
		Description:      "Extract expense report information and receipt data",
		Category:         "Specialized",
		Capabilities:     []string{"text", "entities"},
		MaxPagesOnline:   15,
		EntityExtraction: true,
	},
	{
		Type:             "UTILITY_PROCESSOR",
		Name:             "Utility Bill Parser",
		Description:      "Extract information from utility bills",
		Category:         "Specialized",
		Capabilities:     []string{"text", "entities"},
		MaxPagesOnline:   15,
		EntityExtraction: true,
	},
	{
		Type:             "BANK_STATEMENT_PROCESSOR",
		Name:             "Bank Statement Parser",
		Description:      "Extract transactions and account information from bank statements",
		Category:         "Financial",
		Capabilities:     []string{"text", "entities", "tables"},
		MaxPagesOnline:   15,
		EntityExtraction: true,
	},
	{
		Type:             "PAYSTUB_PROCESSOR",
		Name:             "Pay Stub Parser",
		Description:      "Extract earnings, deductions, and employer information from pay stubs",
		Category:         "Financial",
		Capabilities:     []string{"text", "entities"},
		MaxPagesOnline:   15,
		EntityExtraction: true,
	},
	{
		Type:             "W2_PROCESSOR",
		Name:             "W-2 Parser",
		Description:      "Extract information from W-2 tax forms",
		Category:         "Tax",
		Capabilities:     []string{"text", "entities"},
		MaxPagesOnline:   15,
		EntityExtraction: true,
	},
	{
		Type:             "ID_PROOFING_PROCESSOR",
		Name:             "ID Document Parser",
		Description:      "Extract information from identity documents (passports, driver licenses, national IDs)",
		Category:         "Identity",
		Capabilities:     []string{"text", "entities"},
		MaxPagesOnline:   15,
		EntityExtraction: true,
	},
	{
		Type:             "US_PASSPORT_PROCESSOR",
		Name:             "US Passport Parser",
		Description:      "Extract information from US passports",
		Category:         "Identity",
		Capabilities:     []string{"text", "entities"},
		MaxPagesOnline:   15,
		EntityExtraction: true,
	},
	{
		Type:             "US_DRIVER_LICENSE_PROCESSOR",
		Name:             "US Driver License Parser",
		Description:      "Extract information from US driver licenses",
		Category:         "Identity",
		Capabilities:     []string{"text", "entities"},
		MaxPagesOnline:   15,
		EntityExtraction: true,
	},
}

// LookupProcessorType finds a catalog entry by its GCP type string.
func LookupProcessorType(gcpType string) (ProcessorType, bool) {
	for _, pt := range ProcessorTypes {
		if pt.Type == gcpType {
			return pt, true
		}
	}
	return ProcessorType{}, false
}

// SampleDocument is a publicly hosted document for demoing a processor.
type SampleDocument struct {
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	ProcessorType string `json:"processor_type" yaml:"processor_type"`
	URL           string `json:"url" yaml:"url"`
}

const sampleBucket = "https://storage.googleapis.com/cloud-samples-data/documentai/SampleDocuments"

// SampleDocuments lists the demo documents, one per processor family.
func SampleDocuments() []SampleDocument {
	return []SampleDocument{
		{
			Name:          "Winnie the Pooh - 3 Pages (OCR)",
			Description:   "Multi-page PDF for testing OCR Processor",
			ProcessorType: "OCR_PROCESSOR",
			URL:           sampleBucket + "/OCR_PROCESSOR/Winnie_the_Pooh_3_Pages.pdf",
		},
		{
			Name:          "Intake Form (Form Parser)",
			Description:   "Sample intake form for testing Form Parser",
			ProcessorType: "FORM_PARSER_PROCESSOR",
			URL:           sampleBucket + "/FORM_PARSER_PROCESSOR/intake-form.pdf",
		},
		{
			Name:          "Winnie the Pooh (Layout Parser)",
			Description:   "Book excerpt for testing Layout Parser (3 pages)",
			ProcessorType: "LAYOUT_PARSER_PROCESSOR",
			URL:           sampleBucket + "/OCR_PROCESSOR/Winnie_the_Pooh_3_Pages.pdf",
		},
		{
			Name:          "Google Invoice",
			Description:   "Sample invoice for testing Invoice Parser",
			ProcessorType: "INVOICE_PROCESSOR",
			URL:           sampleBucket + "/INVOICE_PROCESSOR/google_invoice.pdf",
		},
		{
			Name:          "Office Depot Receipt (Expense)",
			Description:   "Redacted receipt for testing Expense Parser",
			ProcessorType: "EXPENSE_PROCESSOR",
			URL:           sampleBucket + "/EXPENSE_PROCESSOR/office-depot-redacted.pdf",
		},
		{
			Name:          "SCE&G Utility Bill",
			Description:   "Utility bill for testing Utility Parser",
			ProcessorType: "UTILITY_PROCESSOR",
			URL:           sampleBucket + "/UTILITY_PROCESSOR/sce_g-bill.pdf",
		},
		{
			Name:          "Bank Statement",
			Description:   "Lending bank statement for testing Bank Statement Parser",
			ProcessorType: "BANK_STATEMENT_PROCESSOR",
			URL:           sampleBucket + "/BANK_STATEMENT_PROCESSOR/lending_bankstatement.pdf",
		},
		{
			Name:          "2020 W-2 Form",
			Description:   "W-2 tax form for testing W2 Parser",
			ProcessorType: "W2_PROCESSOR",
			URL:           sampleBucket + "/FORM_W2_PROCESSOR/2020FormW-2.pdf",
		},
		{
			Name:          "ID Document (Identity Proofing)",
			Description:   "Two-page ID document for testing ID Proofing Processor",
			ProcessorType: "ID_PROOFING_PROCESSOR",
			URL:           sampleBucket + "/ID_PROOFING_PROCESSOR/identity_fraud_two_pages_id.pdf",
		},
		{
			Name:          "US Passport Specimen",
			Description:   "Next-gen US passport specimen for testing Passport Parser",
			ProcessorType: "US_PASSPORT_PROCESSOR",
			URL:           sampleBucket + "/US_PASSPORT_PROCESSOR/2020-Next-Gen-US-Passport.pdf",
		},
		{
			Name:          "Driver License",
			Description:   "Sample driver license for testing DL Parser",
			ProcessorType: "US_DRIVER_LICENSE_PROCESSOR",
			URL:           sampleBucket + "/US_DRIVER_LICENSE_PROCESSOR/dl3.pdf",
		},
	}
}
