package domain

import "github.com/BruksfildServices01/barber-booking/internal/models"

// Actor é quem está executando a operação, lido do token.
type Actor struct {
	UserID   uint
	Role     string
	BarberID uint // zero quando o usuário não é barbeiro
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func (a Actor) IsBarber(barberID uint) bool {
	return a.Role == models.RoleBarber && a.BarberID != 0 && a.BarberID == barberID
}

// CanManageBarber: admin ou o próprio barbeiro.
func (a Actor) CanManageBarber(barberID uint) bool {
	return a.IsAdmin() || a.IsBarber(barberID)
}
