package notificacao

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// EnviarSenhaTemporaria publica a senha temporária gerada na redefinição no
// webhook interno (quem entrega ao usuário é o fluxo do outro lado).
// A URL vem de WEBHOOK_URL; sem ela a notificação é ignorada, pois a senha
// já ficou registrada no banco com a flag de redefinição obrigatória.
func EnviarSenhaTemporaria(email, senhaTemporaria string) error {
	url := os.Getenv("WEBHOOK_URL")
	if url == "" {
		return nil
	}

	payload := map[string]string{
		"tipo":     "senha_temporaria",
		"email":    email,
		"senha":    senhaTemporaria,
		"mensagem": "Senha temporária gerada; o usuário deve redefini-la no primeiro acesso",
		"geradaEm": time.Now().Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	cliente := &http.Client{Timeout: 10 * time.Second}
	resp, err := cliente.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook respondeu status %d", resp.StatusCode)
	}
	return nil
}
