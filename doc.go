// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package rudd3 defines a concrete type for three-valued Binary Decision Diagrams
(3BDD), an extension of Reduced Ordered Binary Decision Diagrams (ROBDD) with a
third terminal value, Unknown, alongside True and False. Three-valued BDDs are
used to represent sound under- and over-approximations of Boolean functions: a
function can be pinned down exactly on part of its domain and left Unknown
elsewhere.

Basics

A 3BDD has a fixed number of variables, Varnum, declared when the BDD is
created with New, and each variable is represented by an (integer) index in
the interval [0..Varnum), called a level. Every operation works over Nodes, an
opaque reference-counted handle on a vertex of the diagram. We use
complemented edges, following the usual ROBDD convention, with the one
exception demanded by the third terminal: an edge pointing at Unknown can
never carry the complement bit, since there is nothing to complement it
against.

Exact and resource-bounded operations

Most of the package implements the classical apply-based operations (And, Or,
Ite, quantification, replacement, ...) over this three-valued domain, adapted
from a plain two-valued ROBDD library. On top of these, the package provides
ReduceByValuation, which restricts a diagram by a three-valued partial
assignment, and a second family of operations -- ReduceByNodeLimit and the
"Reduced" variants of And, Or, Xor, Xnor, Nand, Nor and Ite -- that accept a
budget on the number of new nodes an operation may build. When a recursive call would need to create
more nodes than the budget allows, the sub-result collapses to Unknown rather
than failing outright, producing a sound approximation of the exact result
instead of an error.

Automatic memory management

Like its ancestor, the package is written in pure Go. We piggyback on the
garbage collector offered by the host language: external references held by
user code are reclaimed automatically through finalizers, while the library
manages its own internal node table and the transient references created
during a computation.
*/
package rudd3
