// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package types contains reflection helpers for type introspection along with a few
custom types that have better JSON support than their stdlib counterparts.

Go has no inheritance and does not expose generic type definitions at runtime, so
the helpers here work in terms of what reflect can see: interface implementation
through either receiver, struct embedding, and the instantiations of a generic type.
*/
package types
