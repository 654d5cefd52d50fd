package cardpay

import "fmt"

// Environment is one named set of gateway endpoints. Exactly two exist:
// the sandbox and the live system. URLs are constants per environment,
// never derived at call time.
type Environment struct {
	Name         string
	Pay          string // order submission (form POST, XML reply)
	Status       string // transactions report (form POST, XML reply)
	StatusChange string // capture/refund/void (form POST, XML reply)
	Finish3DS    string // 3-D-Secure continuation (form POST, XML reply)
	Payouts      string // v2 JSON payouts
	Payments     string // v2 JSON payments list/status
	Refunds      string // v2 JSON refunds list/status
}

func Sandbox() Environment {
	return environment("sandbox", "https://sandbox.cardpay.com")
}

func Live() Environment {
	return environment("live", "https://cardpay.com")
}

func environment(name, base string) Environment {
	return Environment{
		Name:         name,
		Pay:          base + "/MI/cardpayment.html",
		Status:       base + "/MI/service/order-report",
		StatusChange: base + "/MI/service/order-change-status",
		Finish3DS:    base + "/MI/cardpayment3ds.html",
		Payouts:      base + "/MI/api/v2/payouts",
		Payments:     base + "/MI/api/v2/payments",
		Refunds:      base + "/MI/api/v2/refunds",
	}
}

// EnvironmentByName resolves the configuration value ("sandbox" or "live").
func EnvironmentByName(name string) (Environment, error) {
	switch name {
	case "sandbox", "test":
		return Sandbox(), nil
	case "live", "production":
		return Live(), nil
	default:
		return Environment{}, fmt.Errorf("unknown environment %q (want sandbox or live)", name)
	}
}
