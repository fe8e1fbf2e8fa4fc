package httpapi

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
)

// ListNamespaces reports the tracked namespaces and registry counters
// GET /api/cache/namespaces
func (h *Handler) ListNamespaces(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"namespaces": h.registry.NamespaceSizes(),
		"stats":      h.registry.Stats(),
	})
}

// ClearNamespace drops every cached entry in a namespace
// DELETE /api/cache/namespaces/:namespace
//
// Clearing is best effort: keys that failed to delete are reported but the
// request still succeeds.
func (h *Handler) ClearNamespace(c *fiber.Ctx) error {
	namespace, err := url.PathUnescape(c.Params("namespace"))
	if err != nil || namespace == "" {
		return goerrorkit.NewValidationError("Invalid namespace", map[string]interface{}{
			"namespace": c.Params("namespace"),
		})
	}

	keys := len(h.registry.Members(namespace))
	clearErr := h.registry.ClearNamespace(c.UserContext(), namespace)
	if clearErr != nil {
		h.logger.WithError(clearErr).WithField("namespace", namespace).Warn("namespace cleared with errors")
	}

	return c.JSON(fiber.Map{
		"message":   "Cache namespace cleared",
		"namespace": namespace,
		"keys":      keys,
		"complete":  clearErr == nil,
	})
}
