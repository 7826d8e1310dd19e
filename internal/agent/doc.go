// Package agent defines the host compose contract and the process-wide
// registry of mail user agents.
//
// Every mail-handling integration in the host registers itself under a
// well-known name. The registry also tracks which agent is currently
// "active", i.e. the host's selected general-purpose composer.
//
// # Compose contract
//
// A compose invocation carries an eight-field Request. To and Subject are
// plain data; the remaining six fields reference host behavior (headers to
// inject, a draft to continue, window-switching and post-send callbacks)
// that only a full in-host composer can honor:
//
//	req := &agent.Request{To: "dev@example.com", Subject: "Re: hi"}
//	if req.Simple() {
//	    // expressible as a mailto: URI
//	}
//
// # Capabilities
//
// Agent is the minimal registration interface. Agents that can compose
// implement Composer as well; callers upgrade with a type assertion:
//
//	a, _ := registry.Lookup("mu4e")
//	c, ok := a.(agent.Composer)
package agent
