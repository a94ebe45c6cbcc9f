package domain

// Application representa um app cadastrado na rede de anúncios, usado no filtro por app
type Application struct {
	AppKey   string `json:"appKey"`
	AppName  string `json:"appName"`
	Platform string `json:"platform"`
	BundleID string `json:"bundleId"`
}
