package term

import (
	"sort"
	"strings"

	set "github.com/hashicorp/go-set/v3"
)

// ============================================================
// Builtin symbols
// ============================================================

const builtinNames = `
Universe Sets Tuples
Fun Function MultivariateFunction
Funs Functions MultivariateFunctions
CartesianProduct CartesianPower
Restriction MultivariateRestriction
One Zero Characteristic
Matrices GeneralLinearGroup SpecialLinearGroup IdentityMatrix ZeroMatrix
Def Gen
All Exists
True False
Parentheses Brackets Braces AngleBrackets
Ellipsis Call Subscript
Repeat Step
Unknown Undefined
Where
Set List Tuple
PowerSet
Union Intersection SetMinus Not And Or Equivalent Implies
Cardinality
Element Elements DistinctElements NotElement Subset SubsetEqual
EqualAndElement
Concatenation
Length Item
Rings CommutativeRings Fields
PP ZZ QQ RR CC HH AlgebraicNumbers ZZp QQp
ZZGreaterEqual ZZLessEqual Range
ClosedInterval OpenInterval ClosedOpenInterval OpenClosedInterval
Path CurvePath
RealBall
UnitCircle
OpenDisk ClosedDisk BernsteinEllipse
InteriorClosure Interior
Decimal
Equal NotEqual Greater GreaterEqual Less LessEqual
Pos Neg Add Sub Mul Div Mod Inv Pow
CongruentMod Odd Even
Max Min Sign Csgn Abs Floor Ceil Arg Re Im Conjugate RealAbs
NearestDecimal
EqualNearestDecimal
Minimum Maximum ArgMin ArgMax ArgMinUnique ArgMaxUnique
Solutions UniqueSolution
Supremum Infimum
Limit SequenceLimit RealLimit LeftLimit RightLimit ComplexLimit MeromorphicLimit
SequenceLimitInferior SequenceLimitSuperior
Derivative RealDerivative ComplexDerivative ComplexBranchDerivative MeromorphicDerivative
IsHolomorphic IsMeromorphic
Sum Product
PrimeSum DivisorSum PrimeProduct DivisorProduct
Integral
IndefiniteIntegralEqual RealIndefiniteIntegralEqual ComplexIndefiniteIntegralEqual
AsymptoticTo
FormalGenerator Polynomials PolynomialFractions RationalFunctions PowerSeries LaurentSeries SeriesCoefficient
Poles BranchPoints BranchCuts EssentialSingularities Zeros UniqueZero AnalyticContinuation
ComplexZeroMultiplicity
Residue
Infinity UnsignedInfinity
Sqrt NthRoot Log LogBase Exp
Sin Cos Tan Sec Cot Csc
Asin Acos Atan Atan2 Asec Acot Acsc
Sinh Cosh Tanh Sech Coth Csch
Asinh Acosh Atanh Asech Acoth Acsch
Sinc LambertW LambertWPuiseuxCoefficient
Pi ConstE ConstGamma ConstI GoldenRatio ConstCatalan ConstGlaisher
Binomial Factorial DoubleFactorial Gamma LogGamma DigammaFunction DigammaFunctionZero PolyGamma
RisingFactorial FallingFactorial HarmonicNumber StirlingSeriesRemainder
Erf Erfc Erfi
UpperGamma LowerGamma
BernoulliB BernoulliPolynomial EulerE EulerPolynomial
StirlingCycle StirlingS1 StirlingS2 BellNumber
RiemannZeta RiemannZetaZero
BesselJ BesselI BesselY BesselK HankelH1 HankelH2
BesselJZero BesselYZero
CoulombF CoulombG CoulombH CoulombC CoulombSigma
Hypergeometric0F1 Hypergeometric1F1 Hypergeometric2F1 Hypergeometric2F0 Hypergeometric3F2
HypergeometricU HypergeometricUStar
Hypergeometric0F1Regularized Hypergeometric1F1Regularized Hypergeometric2F1Regularized Hypergeometric3F2Regularized
Hypergeometric1F2 Hypergeometric1F2Regularized
Hypergeometric2F2 Hypergeometric2F2Regularized
HypergeometricPFQ
HypergeometricPFQRegularized
HypergeometricUStarRemainder
AiryAi AiryBi AiryAiZero AiryBiZero
LegendrePolynomial LegendrePolynomialZero GaussLegendreWeight
HermitePolynomial
ChebyshevT ChebyshevU
DedekindEta EulerQSeries DedekindEtaEpsilon DedekindSum
JacobiTheta JacobiThetaEpsilon JacobiThetaPermutation JacobiThetaQ
Divides
GCD LCM XGCD DivisorSigma MoebiusMu Totient SquaresR LiouvilleLambda
LegendreSymbol JacobiSymbol KroneckerSymbol
Fibonacci
PartitionsP HardyRamanujanA
KroneckerDelta
Lattice
WeierstrassP WeierstrassZeta WeierstrassSigma
PrimeNumber PrimePi
RiemannHypothesis
SinIntegral LogIntegral LandauG
Matrix2x2 Matrix2x1 Matrix
Spectrum Det SingularValues
SL2Z PSL2Z ModularGroupAction ModularGroupFundamentalDomain
ModularLambdaFundamentalDomain
ModularJ ModularLambda
PrimitiveReducedPositiveIntegralBinaryQuadraticForms
HilbertClassPolynomial
DirichletCharacter DirichletGroup PrimitiveDirichletCharacters
ConreyGenerator
DiscreteLog
Cases Otherwise
HurwitzZeta DirichletL GeneralizedBernoulliB LerchPhi PolyLog
RiemannXi StieltjesGamma KeiperLiLambda DeBruijnNewmanLambda
DirichletLZero
GeneralizedRiemannHypothesis
DirichletLambda GaussSum JacobiSum
MultiZetaValue
EisensteinG EisensteinE
AGM AGMSequence EllipticK EllipticE EllipticPi IncompleteEllipticF IncompleteEllipticE IncompleteEllipticPi
EllipticSingularValue
EllipticInvariantG EllipticRootE
CarlsonRF CarlsonRG CarlsonRJ CarlsonRD CarlsonRC CarlsonHypergeometricR CarlsonHypergeometricT
QSeriesCoefficient EqualQSeriesEllipsis
BetaFunction IncompleteBeta IncompleteBetaRegularized
BarnesG LogBarnesG LogBarnesGRemainder
SloaneA
HalphenConstant PolynomialDegree RationalFunctionDegree
HilbertMatrix
StandardIndeterminates StandardNoncommutativeIndeterminates
EvaluateIndeterminate CallIndeterminate
XX XXSeries XXNonCommutative
Evaluated Logic
Cyclotomic
SymmetricPolynomial
PolX PolY PolZ Pol SerX SerY SerQ Ser NonComX NonComY NonCom
Coefficient Polynomial QuotientRing
FormalPowerSeries FormalLaurentSeries FormalPuiseuxSeries
For ForElement Var
Entry Formula ID Assumptions References Variables DomainCodomain
CodeExample
Description Table TableRelation TableValueHeadings TableHeadings TableColumnHeadings TableSplit TableSection
Topic Title DefinitionsTable Section Subsection SeeTopics Entries EntryReference TopicReference
SourceForm SymbolDefinition
Image ImageSource
`

var builtins = set.From[string](strings.Fields(builtinNames))

// IsBuiltin reports whether name is a reserved operator or constant.
func IsBuiltin(name string) bool { return builtins.Contains(name) }

// Builtins returns the sorted list of builtin names.
func Builtins() []string {
	out := builtins.Slice()
	sort.Strings(out)
	return out
}

func builtin(name string) *Term {
	if !builtins.Contains(name) {
		panic("term: unknown builtin " + name)
	}
	return Sym(name)
}

// Symbols used by the kernel.
var (
	True  = builtin("True")
	False = builtin("False")

	Undefined        = builtin("Undefined")
	Unknown          = builtin("Unknown")
	Infinity         = builtin("Infinity")
	UnsignedInfinity = builtin("UnsignedInfinity")

	Pi           = builtin("Pi")
	ConstE       = builtin("ConstE")
	ConstI       = builtin("ConstI")
	ConstGamma   = builtin("ConstGamma")
	ConstCatalan = builtin("ConstCatalan")
	GoldenRatio  = builtin("GoldenRatio")

	Def        = builtin("Def")
	Where      = builtin("Where")
	For        = builtin("For")
	ForElement = builtin("ForElement")
	Subscript  = builtin("Subscript")
	Set        = builtin("Set")
	List       = builtin("List")
	Tuple      = builtin("Tuple")
	Cases      = builtin("Cases")
	Otherwise  = builtin("Otherwise")
	Decimal    = builtin("Decimal")

	Not          = builtin("Not")
	And          = builtin("And")
	Or           = builtin("Or")
	Implies      = builtin("Implies")
	Equivalent   = builtin("Equivalent")
	Union        = builtin("Union")
	Intersection = builtin("Intersection")
	SetMinus     = builtin("SetMinus")

	Element    = builtin("Element")
	NotElement = builtin("NotElement")

	PP  = builtin("PP")
	ZZ  = builtin("ZZ")
	QQ  = builtin("QQ")
	RR  = builtin("RR")
	CC  = builtin("CC")
	HH  = builtin("HH")
	Alg = builtin("AlgebraicNumbers")

	ZZGreaterEqual     = builtin("ZZGreaterEqual")
	ZZLessEqual        = builtin("ZZLessEqual")
	Range              = builtin("Range")
	ClosedInterval     = builtin("ClosedInterval")
	OpenInterval       = builtin("OpenInterval")
	ClosedOpenInterval = builtin("ClosedOpenInterval")
	OpenClosedInterval = builtin("OpenClosedInterval")

	Equal        = builtin("Equal")
	NotEqual     = builtin("NotEqual")
	Greater      = builtin("Greater")
	GreaterEqual = builtin("GreaterEqual")
	Less         = builtin("Less")
	LessEqual    = builtin("LessEqual")

	Parentheses = builtin("Parentheses")
	Brackets    = builtin("Brackets")
	Braces      = builtin("Braces")

	Pos = builtin("Pos")
	Neg = builtin("Neg")
	Add = builtin("Add")
	Sub = builtin("Sub")
	Mul = builtin("Mul")
	Div = builtin("Div")
	Pow = builtin("Pow")

	Sign  = builtin("Sign")
	Abs   = builtin("Abs")
	Floor = builtin("Floor")
	Ceil  = builtin("Ceil")
	Arg   = builtin("Arg")
	Re    = builtin("Re")
	Im    = builtin("Im")

	Sum   = builtin("Sum")
	Zeros = builtin("Zeros")

	Sqrt = builtin("Sqrt")
	Log  = builtin("Log")
	Exp  = builtin("Exp")
	Sin  = builtin("Sin")
	Cos  = builtin("Cos")
	Tan  = builtin("Tan")
	Sec  = builtin("Sec")
	Cot  = builtin("Cot")
	Csc  = builtin("Csc")
	Atan = builtin("Atan")
	Sinh = builtin("Sinh")
	Cosh = builtin("Cosh")
	Tanh = builtin("Tanh")

	Factorial           = builtin("Factorial")
	Gamma               = builtin("Gamma")
	DigammaFunction     = builtin("DigammaFunction")
	RisingFactorial     = builtin("RisingFactorial")
	Erf                 = builtin("Erf")
	Erfc                = builtin("Erfc")
	Erfi                = builtin("Erfi")
	BernoulliB          = builtin("BernoulliB")
	BernoulliPolynomial = builtin("BernoulliPolynomial")
	RiemannZeta         = builtin("RiemannZeta")
	RiemannZetaZero     = builtin("RiemannZetaZero")
	HurwitzZeta         = builtin("HurwitzZeta")

	Hypergeometric0F1            = builtin("Hypergeometric0F1")
	Hypergeometric1F1            = builtin("Hypergeometric1F1")
	Hypergeometric2F1            = builtin("Hypergeometric2F1")
	Hypergeometric2F0            = builtin("Hypergeometric2F0")
	Hypergeometric1F2            = builtin("Hypergeometric1F2")
	Hypergeometric2F2            = builtin("Hypergeometric2F2")
	Hypergeometric3F2            = builtin("Hypergeometric3F2")
	Hypergeometric0F1Regularized = builtin("Hypergeometric0F1Regularized")
	Hypergeometric1F1Regularized = builtin("Hypergeometric1F1Regularized")
	Hypergeometric2F1Regularized = builtin("Hypergeometric2F1Regularized")
	Hypergeometric1F2Regularized = builtin("Hypergeometric1F2Regularized")
	Hypergeometric2F2Regularized = builtin("Hypergeometric2F2Regularized")
	Hypergeometric3F2Regularized = builtin("Hypergeometric3F2Regularized")
	HypergeometricPFQ            = builtin("HypergeometricPFQ")
	HypergeometricPFQRegularized = builtin("HypergeometricPFQRegularized")

	AiryAi     = builtin("AiryAi")
	AiryBi     = builtin("AiryBi")
	AiryAiZero = builtin("AiryAiZero")
	AiryBiZero = builtin("AiryBiZero")

	DedekindEta        = builtin("DedekindEta")
	DedekindEtaEpsilon = builtin("DedekindEtaEpsilon")
	ModularJ           = builtin("ModularJ")
	ModularLambda      = builtin("ModularLambda")
	EllipticK          = builtin("EllipticK")
	EllipticE          = builtin("EllipticE")
	DirichletCharacter = builtin("DirichletCharacter")

	Matrix2x2      = builtin("Matrix2x2")
	Matrix2x1      = builtin("Matrix2x1")
	Matrix         = builtin("Matrix")
	HilbertMatrix  = builtin("HilbertMatrix")
	Det            = builtin("Det")
	Spectrum       = builtin("Spectrum")
	SingularValues = builtin("SingularValues")

	Entry       = builtin("Entry")
	Formula     = builtin("Formula")
	ID          = builtin("ID")
	Variables   = builtin("Variables")
	Assumptions = builtin("Assumptions")
)

// Bool converts a Go boolean to True or False.
func Bool(b bool) *Term {
	if b {
		return True
	}
	return False
}
