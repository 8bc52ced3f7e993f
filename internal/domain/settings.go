package domain

type CompanySettings struct {
	CompanyName string `json:"company_name"`
	LogoURL     string `json:"logo_url"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	Telephone   string `json:"telephone"`
	TollFree    string `json:"toll_free"`
	SiteURL     string `json:"site_url"`
	UpdatedOn   string `json:"updated_on"`
}

type DashboardCounts struct {
	Forms      int32 `json:"forms"`
	Products   int32 `json:"products"`
	Categories int32 `json:"categories"`
	Orders     int32 `json:"orders"`
	Users      int32 `json:"users"`
}
