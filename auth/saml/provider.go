package saml

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/gobuffalo/buffalo"
	saml2 "github.com/russellhaering/gosaml2"
	"github.com/russellhaering/gosaml2/types"
	dsig "github.com/russellhaering/goxmldsig"

	"github.com/silinternational/terra/auth"
	"github.com/silinternational/terra/domain"
)

const (
	keyTypeCert    = "CERTIFICATE"
	keyTypePrivate = "PRIVATE KEY"
)

// Provider wraps a SAML service provider configured for the single identity provider of the organization
type Provider struct {
	Config       Config
	SamlProvider *saml2.SAMLServiceProvider
}

type Config struct {
	IDPEntityID                 string            `json:"IDPEntityID"`
	SPEntityID                  string            `json:"SPEntityID"`
	SingleSignOnURL             string            `json:"SingleSignOnURL"`
	SingleLogoutURL             string            `json:"SingleLogoutURL"`
	AudienceURI                 string            `json:"AudienceURI"`
	AssertionConsumerServiceURL string            `json:"AssertionConsumerServiceURL"`
	IDPPublicCert               string            `json:"IDPPublicCert"`
	IDPPublicCert2              string            `json:"IDPPublicCert2"`
	SPPublicCert                string            `json:"SPPublicCert"`
	SPPrivateKey                string            `json:"SPPrivateKey"`
	SignRequest                 bool              `json:"SignRequest"`
	CheckResponseSigning        bool              `json:"CheckResponseSigning"`
	RequireEncryptedAssertion   bool              `json:"RequireEncryptedAssertion"`
	AttributeMap                map[string]string `json:"AttributeMap"`
}

// GetKeyPair implements dsig.X509KeyStore interface
func (c *Config) GetKeyPair() (privateKey *rsa.PrivateKey, cert []byte, err error) {
	rsaKey, err := getRsaPrivateKey(c.SPPrivateKey, c.SPPublicCert)
	if err != nil {
		return &rsa.PrivateKey{}, []byte{}, err
	}

	return rsaKey, []byte(c.SPPublicCert), nil
}

// NewConfigFromEnv builds a Config from the SAML settings in domain.Env
func NewConfigFromEnv() Config {
	return Config{
		IDPEntityID:                 domain.Env.SamlIdpEntityId,
		SPEntityID:                  domain.Env.SamlSpEntityId,
		SingleSignOnURL:             domain.Env.SamlSsoURL,
		SingleLogoutURL:             domain.Env.SamlSloURL,
		AudienceURI:                 domain.Env.SamlAudienceUri,
		AssertionConsumerServiceURL: domain.Env.SamlAssertionConsumerServiceUrl,
		IDPPublicCert:               replaceNewLines(domain.Env.SamlIdpCert),
		SPPublicCert:                replaceNewLines(domain.Env.SamlSpCert),
		SPPrivateKey:                replaceNewLines(domain.Env.SamlSpPrivateKey),
		SignRequest:                 domain.Env.SamlSignRequest,
		CheckResponseSigning:        domain.Env.SamlCheckResponseSigning,
	}
}

func replaceNewLines(input string) string {
	return strings.ReplaceAll(input, `\n`, "\n")
}

func New(config Config) (*Provider, error) {
	p := &Provider{
		Config: config,
	}

	err := p.initSAMLServiceProvider()
	if err != nil {
		return p, err
	}

	return p, nil
}

func (p *Provider) initSAMLServiceProvider() error {
	idpCertStore, err := getCertStore(p.Config.IDPPublicCert, p.Config.IDPPublicCert2)
	if err != nil {
		return fmt.Errorf("error in initSAMLServiceProvider: %w", err)
	}

	p.SamlProvider = &saml2.SAMLServiceProvider{
		IdentityProviderSSOURL:         p.Config.SingleSignOnURL,
		IdentityProviderIssuer:         p.Config.IDPEntityID,
		AssertionConsumerServiceURL:    p.Config.AssertionConsumerServiceURL,
		ServiceProviderIssuer:          p.Config.SPEntityID,
		SignAuthnRequests:              p.Config.SignRequest,
		SignAuthnRequestsAlgorithm:     "",
		SignAuthnRequestsCanonicalizer: nil,
		RequestedAuthnContext:          nil,
		AudienceURI:                    p.Config.AudienceURI,
		IDPCertificateStore:            &idpCertStore,
		SPKeyStore:                     &p.Config,
		SPSigningKeyStore:              &p.Config,
		NameIdFormat:                   "",
		ValidateEncryptionCert:         false,
		SkipSignatureValidation:        false,
		AllowMissingAttributes:         false,
		Clock:                          nil,
	}

	return nil
}

// AuthRequest returns the URL for the authentication end-point. The relay state is returned by the
// identity provider with the assertion.
func (p *Provider) AuthRequest(relayState string) (string, error) {
	return p.SamlProvider.BuildAuthURL(relayState)
}

// AuthCallback gets information about the user from the saml assertion.
func (p *Provider) AuthCallback(c buffalo.Context) auth.Response {
	resp := auth.Response{}

	// check if this is not a saml response and redirect
	samlResp := c.Param("SAMLResponse")
	if samlResp == "" {
		resp.RedirectURL, resp.Error = p.SamlProvider.BuildAuthURL("")
		return resp
	}

	// verify and retrieve assertion
	assertion, err := p.SamlProvider.RetrieveAssertionInfo(samlResp)
	if err != nil {
		resp.Error = err
		return resp
	}
	if len(assertion.Assertions) == 0 {
		resp.Error = errors.New("saml response contains no assertions")
		return resp
	}
	if assertion.WarningInfo != nil && assertion.WarningInfo.NotInAudience {
		resp.Error = errors.New("saml assertion is not for this audience")
		return resp
	}

	resp.AuthUser = getUserFromAttributes(assertion.Assertions[0].AttributeStatement.Attributes)

	return resp
}

// Logout returns the identity provider's logout URL, which will send the browser back to the app afterward
func (p *Provider) Logout() auth.Response {
	if p.Config.SingleLogoutURL == "" {
		return auth.Response{RedirectURL: domain.LogoutRedirectURL}
	}
	rURL := fmt.Sprintf("%s?ReturnTo=%s", p.Config.SingleLogoutURL, domain.LogoutRedirectURL)
	return auth.Response{RedirectURL: rURL}
}

func getUserFromAttributes(attributes []types.Attribute) *auth.User {
	return &auth.User{
		FirstName: getSAMLAttributeFirstValue("givenName", attributes),
		LastName:  getSAMLAttributeFirstValue("sn", attributes),
		Email:     getSAMLAttributeFirstValue("mail", attributes),
		StaffID:   getSAMLAttributeFirstValue("employeeNumber", attributes),
	}
}

func getSAMLAttributeFirstValue(attrName string, attributes []types.Attribute) string {
	for _, attr := range attributes {
		if attr.Name != attrName {
			continue
		}

		if len(attr.Values) > 0 {
			return attr.Values[0].Value
		}
		return ""
	}
	return ""
}

func getCertStore(certs ...string) (dsig.MemoryX509CertificateStore, error) {
	certStore := dsig.MemoryX509CertificateStore{
		Roots: []*x509.Certificate{},
	}

	if len(certs) < 1 || certs[0] == "" {
		return certStore, errors.New("a valid PEM or base64 encoded certificate is required")
	}

	for _, cert := range certs {
		if cert == "" {
			continue
		}

		certData, err := decodeKey(cert, "CERTIFICATE")
		if err != nil {
			return certStore, fmt.Errorf("error decoding cert from string %q: %s", cert, err)
		}

		idpCert, err := x509.ParseCertificate(certData)
		if err != nil {
			return certStore, fmt.Errorf("error parsing cert: %s", err)
		}

		certStore.Roots = append(certStore.Roots, idpCert)
	}

	return certStore, nil
}

func getRsaPrivateKey(privateKey, publicCert string) (*rsa.PrivateKey, error) {
	var rsaKey *rsa.PrivateKey

	if privateKey == "" {
		return rsaKey, errors.New("A valid PEM or base64 encoded privateKey is required")
	}

	if publicCert == "" {
		return rsaKey, errors.New("A valid PEM or base64 encoded publicCert is required")
	}

	privateKeyBytes, err := decodeKey(privateKey, keyTypePrivate)
	if err != nil {
		return nil, fmt.Errorf("problem with RSA private key: %w", err)
	}

	var parsedKey any
	if parsedKey, err = x509.ParsePKCS8PrivateKey(privateKeyBytes); err != nil {
		if parsedKey, err = x509.ParsePKCS1PrivateKey(privateKeyBytes); err != nil {
			return rsaKey, fmt.Errorf("unable to parse RSA private key: %s", err)
		}
	}

	var ok bool
	rsaKey, ok = parsedKey.(*rsa.PrivateKey)
	if !ok {
		return rsaKey, errors.New("unable to assert parsed key type")
	}

	publicCertBytes, err := decodeKey(publicCert, keyTypeCert)
	if err != nil {
		return nil, fmt.Errorf("problem with RSA public cert: %w", err)
	}

	cert, err := x509.ParseCertificate(publicCertBytes)
	if err != nil {
		return rsaKey, fmt.Errorf("unable to parse RSA public cert: %s", err)
	}

	var pubKey *rsa.PublicKey
	if pubKey, ok = cert.PublicKey.(*rsa.PublicKey); !ok {
		return rsaKey, errors.New("unable to assert RSA public cert type")
	}

	rsaKey.PublicKey = *pubKey

	return rsaKey, nil
}

// decodeKey decodes a key from either a PEM-encoded string or a base64 string
func decodeKey(key, expectedType string) ([]byte, error) {
	block, _ := pem.Decode([]byte(key))
	if block != nil {
		if block.Type != expectedType {
			return nil, fmt.Errorf("key is of the wrong type, expected %s but found %s", expectedType, block.Type)
		}
		return block.Bytes, nil
	}

	var bytes []byte
	bytes = make([]byte, base64.StdEncoding.DecodedLen(len(key)))
	n, err := base64.StdEncoding.Decode(bytes, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("unable to decode base64: %w", err)
	}
	return bytes[:n], nil
}
