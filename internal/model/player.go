package model

type ClientPlayer struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
}

type Players struct {
	Light ClientPlayer `json:"light"`
	Dark  ClientPlayer `json:"dark"`
}

func (p *Players) seat(color Color) *ClientPlayer {
	if color == Light {
		return &p.Light
	}
	return &p.Dark
}

// colorOf reports which color playerID is seated on.
func (p *Players) colorOf(playerID string) (Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case p.Light.ID == playerID:
		return Light, true
	case p.Dark.ID == playerID:
		return Dark, true
	}
	return "", false
}
