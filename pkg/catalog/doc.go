// Package catalog holds the static definitions of characteristic and
// service kinds.
//
// Definitions are loaded from an embedded YAML file and validated once.
// Every characteristic kind maps to a model.Identity and model.Format that
// are shared by all instances of that kind; every service kind lists the
// characteristic kinds it is composed of, in order.
package catalog
