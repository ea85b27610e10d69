package domain

type Country struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type State struct {
	ID        uint   `json:"id"`
	CountryID uint   `json:"country_id"`
	UF        string `json:"uf"`
	Name      string `json:"name"`
}

type City struct {
	ID       uint   `json:"id"`
	StateID  uint   `json:"state_id"`
	State    *State `json:"state,omitempty"`
	Name     string `json:"name"`
	IBGECode string `json:"ibge_code,omitempty"`
}

type MissionCategory struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type NewsCategory struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ItemType struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Category    string `json:"category,omitempty"`
}
