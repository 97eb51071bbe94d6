package domain

// Page is a navigation target a controller can redirect to.
type Page string

const (
	PageHome          Page = "home"
	PageLogin         Page = "login"
	PageSellerConsole Page = "seller"
)
