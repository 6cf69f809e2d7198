package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock é a única fonte de "agora" dos casos de uso.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Loc *time.Location
}

func NewSystemClock(tz string) SystemClock {
	return SystemClock{Loc: Location(tz)}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.Loc)
}

// FixedClock devolve sempre o mesmo instante (testes e replays).
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
