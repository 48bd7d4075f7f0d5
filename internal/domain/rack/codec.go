package rack

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// Config describe la estructura direccionable de una estantería:
// tipo de cara, niveles, cuerpos y posiciones por cuerpo.
type Config struct {
	FaceType   string // entity.FaceTypeSingle | entity.FaceTypeDouble
	Levels     int
	Bays       int
	BinsPerBay int
}

// codePattern gramática del código de estantería: R-{S|D}-L{niveles}-B{cuerpos}-P{posiciones}.
// Match anclado y sensible a mayúsculas: "r-d-l2..." no parsea.
var codePattern = regexp.MustCompile(`^R-(S|D)-L(\d+)-B(\d+)-P(\d+)$`)

// Encode serializa la configuración a su código compacto.
// Los campos numéricos se redondean al entero positivo más cercano (mínimo 1):
// Encode es total y nunca falla por valores fuera de rango.
func Encode(cfg Config) string {
	face := "S"
	if cfg.FaceType == entity.FaceTypeDouble {
		face = "D"
	}
	return fmt.Sprintf("R-%s-L%d-B%d-P%d",
		face, clampDim(cfg.Levels), clampDim(cfg.Bays), clampDim(cfg.BinsPerBay))
}

// Decode parsea un código de estantería. Devuelve ErrRackCodeNotParseable si la
// cadena no respeta la gramática.
func Decode(code string) (Config, error) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return Config{}, domain.ErrRackCodeNotParseable
	}
	face := entity.FaceTypeSingle
	if m[1] == "D" {
		face = entity.FaceTypeDouble
	}
	levels, _ := strconv.Atoi(m[2])
	bays, _ := strconv.Atoi(m[3])
	bins, _ := strconv.Atoi(m[4])
	cfg := Config{FaceType: face, Levels: levels, Bays: bays, BinsPerBay: bins}
	if levels < 1 || bays < 1 || bins < 1 {
		// dígitos válidos pero dimensión cero: el código no describe ninguna grilla
		return Config{}, domain.ErrRackCodeNotParseable
	}
	return cfg, nil
}

// Normalize devuelve la configuración con dimensiones saneadas, tal como
// quedarían tras Encode+Decode.
func Normalize(cfg Config) Config {
	if cfg.FaceType != entity.FaceTypeDouble {
		cfg.FaceType = entity.FaceTypeSingle
	}
	cfg.Levels = clampDim(cfg.Levels)
	cfg.Bays = clampDim(cfg.Bays)
	cfg.BinsPerBay = clampDim(cfg.BinsPerBay)
	return cfg
}

// ClampDimension redondea un valor arbitrario al entero positivo más cercano (mínimo 1).
func ClampDimension(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}

func clampDim(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ParseDirection normaliza un token de dirección laxo (R/r/right/L/l/left/vacío)
// a exactamente uno de los dos valores persistidos. El vacío canonicaliza a R
// (cara única). Token desconocido devuelve ErrInvalidInput.
func ParseDirection(token string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "r", "right":
		return entity.DirectionRight, nil
	case "l", "left":
		return entity.DirectionLeft, nil
	}
	return "", domain.ErrInvalidInput
}

// Coordinate sintetiza la coordenada de una posición a partir del código vigente
// de la estantería: {rackCode}-{R|L}-B{cuerpo}-L{nivel}-P{posición}.
func Coordinate(rackCode, direction string, bay, level, bin int) string {
	return fmt.Sprintf("%s-%s-B%d-L%d-P%d", rackCode, direction, bay, level, bin)
}
