package node

import "fmt"

// Mintette is one entry of the bank's mintette roster. The roster is an
// externally refreshed snapshot; mintettes are addressed by their index in
// it.
type Mintette struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func (m Mintette) Endpoint() string {
	return fmt.Sprintf("http://%s:%d", m.Host, m.Port)
}

// Explorer is one entry of the bank's explorer roster. Key is the explorer's
// compressed public key in hex.
type Explorer struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	Key  string `json:"key"`
}

func (e Explorer) Endpoint() string {
	return fmt.Sprintf("http://%s:%d", e.Host, e.Port)
}
