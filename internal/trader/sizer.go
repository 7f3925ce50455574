package trader

import "math"

// StakeConfig contiene las opciones de sizing de la apuesta de entrada.
type StakeConfig struct {
	// MinBackStake es el stake mínimo que acepta el exchange (típicamente £2).
	MinBackStake float64
	// TestMode activa el sizing de prueba (stakes reducidos).
	TestMode bool
	// MinLiabilityMode, junto con TestMode, dimensiona el stake para que la
	// liability quede en MaxTestLiability en lugar de usar stake fijo.
	MinLiabilityMode bool
	// MaxTestLiability es la pérdida contingente objetivo en modo test.
	MaxTestLiability float64
	// TestStakeCap es el tope absoluto de stake en modo test.
	TestStakeCap float64
	// TestStake es el stake fijo en modo test sin min-liability.
	TestStake float64
	// Stake es el stake fijo en modo live.
	Stake float64
	// MaxLiveLiability bloquea la entrada en modo live si la liability
	// la superaría. 0 = sin límite.
	MaxLiveLiability float64
}

// ComputeStake devuelve el stake de entrada para un precio de back dado.
// Stake 0 es la señal universal de "no colocar esta orden".
//
// En modo test + min-liability: stake = MaxTestLiability / (odds - 1),
// con piso en MinBackStake y tope en TestStakeCap. El mínimo del venue
// domina sobre el objetivo de liability — si el piso sube el stake, la
// liability resultante puede superar MaxTestLiability. Es un override de
// riesgo conocido y documentado, no un bug.
//
// En el resto de modos: stake fijo configurado. Si MaxLiveLiability está
// configurado y la liability lo superaría, devuelve 0 — skip duro, nunca
// reduce el stake en silencio (eso cambiaría el perfil de riesgo sin avisar).
func ComputeStake(odds float64, cfg StakeConfig) float64 {
	if odds <= 1.0 {
		// sin edge posible y evita división por cero
		return 0
	}

	if cfg.TestMode && cfg.MinLiabilityMode {
		stake := cfg.MaxTestLiability / (odds - 1.0)
		if stake < cfg.MinBackStake {
			stake = cfg.MinBackStake
		}
		if stake > cfg.TestStakeCap {
			stake = cfg.TestStakeCap
		}
		return round2(stake)
	}

	stake := cfg.Stake
	if cfg.TestMode {
		stake = cfg.TestStake
	}
	if cfg.MaxLiveLiability > 0 {
		if (odds-1.0)*stake > cfg.MaxLiveLiability {
			return 0
		}
	}
	if stake < cfg.MinBackStake {
		stake = cfg.MinBackStake
	}
	return round2(stake)
}

// round2 redondea a 2 decimales (granularidad de moneda del exchange).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
