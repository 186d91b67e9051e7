package entities

// Banner is a promotional banner shown on the customer start page
type Banner struct {
	Title string `json:"title"`
	Src   string `json:"src"`
	Text  string `json:"text"`
}
