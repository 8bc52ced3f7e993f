package domain

type FormStatus string

const (
	FormStatusDraft     FormStatus = "draft"
	FormStatusPublished FormStatus = "published"
	FormStatusClosed    FormStatus = "closed"
)

// RentalWindow holds the load-in, start and finish moments of an event as
// entered on the form (dates as YYYY-MM-DD, times as HH:MM).
type RentalWindow struct {
	LoadInDate string `json:"load_in_date"`
	LoadInTime string `json:"load_in_time"`
	StartDate  string `json:"start_date"`
	StartTime  string `json:"start_time"`
	FinishDate string `json:"finish_date"`
	FinishTime string `json:"finish_time"`
}

type EventInfo struct {
	ShowName string       `json:"show_name"`
	Facility string       `json:"facility"`
	Room     string       `json:"room"`
	Window   RentalWindow `json:"window"`
}

type OrderForm struct {
	ID             int32      `json:"id"`
	OwnerID        int32      `json:"owner_id"`
	Title          string     `json:"title"`
	ContactName    string     `json:"contact_name"`
	ContactEmail   string     `json:"contact_email"`
	ContactPhone   string     `json:"contact_phone"`
	CompanyName    string     `json:"company_name"`
	CompanyLogoURL string     `json:"company_logo_url"`
	Event          EventInfo  `json:"event"`
	ProductIDs     []int32    `json:"product_ids"`
	IsPrepaid      bool       `json:"is_prepaid"`
	Tax            TaxConfig  `json:"tax"`
	Status         FormStatus `json:"status"`
	AccessCodeHash string     `json:"-"`
	CreatedOn      string     `json:"created_on"`
	UpdatedOn      string     `json:"updated_on"`
}

type FormFilter struct {
	Search   string
	Status   FormStatus
	Page     int32
	PageSize int32
}
