// Package manifest parses the optional YAML page manifest.
//
// A manifest declares the root page kind and per-kind view titles. Title
// templates may reference payload fields with {user_id}, {item_id} and
// {item_name} placeholders:
//
//	root: home
//	pages:
//	  - kind: home
//	    title: Home
//	  - kind: profile
//	    title: "Profile {user_id}"
//	  - kind: detail
//	    title: "{item_name}"
//
// Unknown kinds and duplicate entries are rejected at parse time so a bad
// manifest fails startup instead of rendering surprises later.
package manifest
