package operator

var (
	_ Move = (*Exchange)(nil)
	_ Move = (*IntraExchange)(nil)
	_ Move = (*CrossExchange)(nil)
	_ Move = (*IntraCrossExchange)(nil)
	_ Move = (*MixedExchange)(nil)
	_ Move = (*IntraMixedExchange)(nil)
	_ Move = (*Relocate)(nil)
	_ Move = (*IntraRelocate)(nil)
	_ Move = (*OrOpt)(nil)
	_ Move = (*IntraOrOpt)(nil)
	_ Move = (*TwoOpt)(nil)
	_ Move = (*ReverseTwoOpt)(nil)
	_ Move = (*IntraTwoOpt)(nil)
	_ Move = (*RouteExchange)(nil)
	_ Move = (*RouteShift)(nil)
	_ Move = (*SwapStar)(nil)
	_ Move = (*PDShift)(nil)
	_ Move = (*UnassignedExchange)(nil)
	_ Move = (*PriorityReplace)(nil)
	_ Move = (*RouteSplit)(nil)
	_ Move = (*TSPFix)(nil)
)
