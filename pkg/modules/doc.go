// Package modules defines the call contract between the hub and its pluggable
// policy modules.
//
// Three module families exist: follow modules gate who may follow a profile,
// collect modules gate who may mint a collect token against a publication,
// and reference modules gate how comments and mirrors may point at a
// publication. Modules are independent implementations selected dynamically
// by stored address: governance whitelists an address, and the hub resolves
// the address to an implementation through a Registry at call time.
//
// Every hook takes the sender address explicitly. Hooks are only meaningful
// when invoked by the hub, and implementations must reject any other sender;
// ModuleBase provides that guard. Initializer hooks return opaque bytes that
// the hub embeds in its creation events; processing hooks veto the action by
// returning an error, which aborts the whole operation.
package modules
