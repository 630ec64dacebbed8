package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	vault "github.com/hashicorp/vault/api"
)

type Secret string

type SecretType string

var Env SecretType = "env"
var Vault SecretType = "vault"
var Raw SecretType = "raw"
var File SecretType = "file"
var GoogleSecretManager SecretType = "gsm"

func (s Secret) Load() (string, error) {
	return GetSecret(string(s))
}
func (s Secret) LoadOrBlank() string {
	deref, _ := GetSecret(string(s))
	return deref
}

func NewRawSecret(secret string) Secret {
	return Secret(fmt.Sprintf("raw:%s", secret))
}

func HasTypePrefix(secretRef string) bool {
	switch SecretType(strings.Split(secretRef, ":")[0]) {
	case Env, Vault, Raw, File, GoogleSecretManager:
		return true
	}
	return false
}

func newVaultClient(cfg *vault.Config) (VaultLoader, error) {
	cli, err := vault.NewClient(cfg)
	if err != nil {
		return &DefaultVaultLoader{}, err
	}
	return &DefaultVaultLoader{Client: cli}, nil
}

var NewVaultClient = newVaultClient

type DefaultVaultLoader struct {
	*vault.Client
}

var _ VaultLoader = &DefaultVaultLoader{}

func (v *DefaultVaultLoader) LoadSecretData(vaultPath string) (*vault.Secret, error) {
	secret, err := v.Logical().Read(vaultPath)
	if err != nil || secret == nil { // yes, secret can be nil
		return &vault.Secret{}, err
	}
	return secret, nil
}

type VaultLoader interface {
	LoadSecretData(path string) (*vault.Secret, error)
}

// SecretManagerLoader reads a secret version from Google Secret Manager
type SecretManagerLoader interface {
	AccessSecretVersion(ctx context.Context, name string) ([]byte, error)
}

type DefaultSecretManagerLoader struct{}

var _ SecretManagerLoader = &DefaultSecretManagerLoader{}

func (l *DefaultSecretManagerLoader) AccessSecretVersion(ctx context.Context, name string) ([]byte, error) {
	// uses application default credentials
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, err
	}
	if resp.GetPayload() == nil {
		return nil, nil
	}
	return resp.GetPayload().GetData(), nil
}

var NewSecretManagerClient = func() SecretManagerLoader {
	return &DefaultSecretManagerLoader{}
}

// GetSecret returns a secret, e.g. from env variable. Extend as needed.
func GetSecret(uri string) (string, error) {
	value := uri

	splits := strings.Split(value, ":")
	if len(splits) < 2 {
		return "", errors.New("invalid secret source for: ***")
	}

	path := splits[1]
	switch key := splits[0]; key {
	case "env":
		return strings.TrimSpace(os.Getenv(path)), nil
	case "raw":
		return strings.Join(splits[1:], ":"), nil
	case "file":
		file, err := os.Open(expandHome(path))
		if err != nil {
			return "", err
		}
		defer file.Close()
		result, err := io.ReadAll(file)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(result)), nil
	case "gsm":
		name := strings.Join(splits[1:], ":")
		if !strings.HasPrefix(name, "projects/") {
			return "", errors.New("gsm secret must be a resource name (projects/<project>/secrets/<name>/versions/<version>)")
		}
		if !strings.Contains(name, "/versions/") {
			name = name + "/versions/latest"
		}
		data, err := NewSecretManagerClient().AccessSecretVersion(context.Background(), name)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	case "vault":
		vaultArgString := strings.Join(splits[1:], ":")
		vaultArgs := strings.Split(vaultArgString, ",")
		if len(vaultArgs) != 2 {
			return "", errors.New("vault secret has 2 comma separated arguments (url,path)")
		}
		// expect VAULT_TOKEN in env
		vaultUrl := vaultArgs[0]
		vaultFullPath := vaultArgs[1]

		cfg := &vault.Config{Address: vaultUrl}
		client, err := NewVaultClient(cfg)
		if err != nil {
			return "", err
		}

		idx := strings.LastIndex(vaultFullPath, "/")
		if idx == -1 || idx == len(vaultFullPath) { // idx shouldn't be the last char
			return "", errors.New("malformed vault secret in config file")
		}
		vaultKey := vaultFullPath[idx+1:]
		vaultPath := vaultFullPath[:idx]

		secret, err := client.LoadSecretData(vaultPath)
		if err != nil {
			return "", err
		}
		data, _ := secret.Data["data"].(map[string]interface{})
		result, _ := data[vaultKey].(string)
		return strings.TrimSpace(result), nil
	}
	return "", errors.New("invalid secret source for: ***")
}

// ResolveKeypair returns the keypair material a reference points at. A reference
// is a secret reference, the keypair array itself, or the path of a keypair file.
func ResolveKeypair(ref Secret) (string, error) {
	value := strings.TrimSpace(string(ref))
	if value == "" {
		value = DefaultKeypairPath
	}
	if strings.HasPrefix(value, "[") {
		return value, nil
	}
	if HasTypePrefix(value) {
		return Secret(value).Load()
	}
	contents, err := os.ReadFile(expandHome(value))
	if err != nil {
		return "", fmt.Errorf("could not read keypair file: %w", err)
	}
	return strings.TrimSpace(string(contents)), nil
}
