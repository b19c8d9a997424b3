package game

import "math"

// fullTurns - минимальное число полных оборотов колеса за спин
const fullTurns = 4

// wheelTarget - угол, на котором колесо остановится центром сектора index под указателем.
// Сектор i занимает [i*seg, (i+1)*seg) по часовой стрелке от указателя
func wheelTarget(prior float64, index, segments int) float64 {
	seg := 360 / float64(segments)
	desired := math.Mod(360-(float64(index)*seg+seg/2), 360)
	current := math.Mod(prior, 360)
	offset := math.Mod(desired-current+360, 360)
	return prior + fullTurns*360 + offset
}
