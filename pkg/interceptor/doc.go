// Package interceptor redirects outbound chat-completion requests to a
// configured inference endpoint without changing the calling code.
//
// Callers build their http.Clients with a shared [Slot] as Transport. The
// slot's [Interceptor] installs a redirecting transport into the slot while its
// [Config] is active and restores the original transport when the config
// becomes inactive or the interceptor is closed:
//
//	slot := interceptor.NewSlot(nil)
//	client := &http.Client{Transport: slot}
//
//	ic := slot.Interceptor()
//	defer ic.Close()
//	ic.UpdateConfig(interceptor.Config{APIKey: key, EndpointURL: url})
//
// Requests whose path contains a recognized completion pattern are sent to
// EndpointURL + "/v1/chat/completions" with a bearer token. If the endpoint
// cannot be reached, the original request is sent to its original
// destination instead.
package interceptor
