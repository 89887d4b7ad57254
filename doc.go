/* Package main: rpnc, a postfix calculator language over exact rationals.

Every value is an arbitrary-precision rational number. There is no
floating point anywhere: 1 3 / stays one third, and multiplying it by
3 gives exactly 1.

Input is a stream of whitespace-separated tokens. Value tokens push
onto a stack; command tokens act on it. The binary operators

	+ - * / ~ \ ^

are value tokens too: pushing "+" does not add anything yet, it only
records that an addition is owed two operands. Evaluation happens when
a command such as "=" clips the topmost complete expression off the
stack, builds it into a tree, and reduces it:

	3 4 + =
	> 7

The ternary "?" selects between two prior expressions by a predicate,
evaluating the predicate first and then only the chosen branch. That
laziness is what makes recursive definitions terminate:

	$0 $0 1 ~ fact * 1 $0 ? fact|1

declares fact over one argument: if $0 is non-zero take the left
branch ($0 * fact($0-1)), otherwise the right (1). Names bind late;
redefining a function changes the behavior of everything already
declared in terms of it. A name may hold one definition per arity at
the same time.

Definitions come in two modes. name|arity consumes one expression as
a recursive body. name@arity consumes arity+2 expressions (a stop
predicate, a terminal mapping, and one step expression per argument)
and runs as a loop, so unbounded iteration counts never touch the
recursion depth limit.

The remaining commands: "#" evaluates and pushes the result back, "<"
evaluates and pushes it twice, ":" lists the stack's expressions,
">" evaluates every complete expression concurrently and prints the
results in stack order, "!" drops the top expression, "%" clears the
stack, "=name" binds a variable, and "&" prints an integer result as
raw bytes (quoted string literals become integers by the same base-256
encoding, making "&" their inverse).
*/
package main
