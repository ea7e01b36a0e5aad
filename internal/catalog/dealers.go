package catalog

// Dealer 授权经销商
type Dealer struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	City    string `json:"city"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

var dealers = []Dealer{
	{1, "TechWorld Electronics", "India", "Mumbai", "123 Marine Drive, Mumbai 400001", "+91 22 1234 5678", "mumbai@techworld.in"},
	{2, "Digital Hub", "India", "Delhi", "456 Connaught Place, New Delhi 110001", "+91 11 2345 6789", "delhi@digitalhub.in"},
	{3, "Gadget Zone", "India", "Bangalore", "789 MG Road, Bangalore 560001", "+91 80 3456 7890", "blr@gadgetzone.in"},
	{4, "Smart Systems", "India", "Chennai", "321 Anna Salai, Chennai 600002", "+91 44 4567 8901", "chennai@smartsystems.in"},
	{5, "Tech Paradise", "USA", "New York", "100 5th Avenue, NY 10011", "+1 212 555 0100", "nyc@techparadise.com"},
	{6, "Silicon Store", "USA", "San Francisco", "200 Market Street, SF 94102", "+1 415 555 0200", "sf@siliconstore.com"},
	{7, "Digital Dreams", "UK", "London", "50 Oxford Street, London W1D 1BF", "+44 20 7123 4567", "london@digitaldreams.co.uk"},
	{8, "Euro Electronics", "Germany", "Berlin", "Friedrichstraße 123, 10117 Berlin", "+49 30 1234567", "berlin@euroelectronics.de"},
	{9, "Tech Oasis", "UAE", "Dubai", "Dubai Mall, Downtown Dubai", "+971 4 123 4567", "dubai@techoasis.ae"},
	{10, "Asia Tech", "Singapore", "Singapore", "10 Orchard Road, Singapore 238826", "+65 6123 4567", "sg@asiatech.com"},
}

// Dealers 按国家筛选经销商，空串或 "all" 返回全部
func Dealers(country string) []Dealer {
	out := make([]Dealer, 0, len(dealers))
	for _, d := range dealers {
		if country == "" || country == CategoryAll || d.Country == country {
			out = append(out, d)
		}
	}
	return out
}

// DealerCountries 去重后的国家列表，保持首次出现顺序
func DealerCountries() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range dealers {
		if _, ok := seen[d.Country]; ok {
			continue
		}
		seen[d.Country] = struct{}{}
		out = append(out, d.Country)
	}
	return out
}
